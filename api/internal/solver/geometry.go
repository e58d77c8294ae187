package solver

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var reNumber = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// allNumbers pulls every numeric literal out of the text, in order.
func allNumbers(text string) []float64 {
	var out []float64
	for _, m := range reNumber.FindAllString(text, -1) {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Dimension words and the pattern that reads the number following each.
var geoDims = func() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp)
	for _, k := range []string{"radius", "diameter", "base", "height", "width", "length", "side", "hypotenuse", "leg"} {
		out[k] = regexp.MustCompile(k + `[^0-9\-]{0,24}?(-?\d+(?:\.\d+)?)`)
	}
	return out
}()

// dimValue finds the number attached to a dimension word, e.g. "radius of
// 5" or "height h = 12".
func dimValue(lower, name string) (float64, bool) {
	m := geoDims[name].FindStringSubmatch(lower)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	return v, err == nil
}

var (
	reWordSquare = regexp.MustCompile(`\bsquare\b`)
	reWordCone   = regexp.MustCompile(`\bcone\b`)
)

// solveGeometry computes the asked-for measure of the named shape from the
// dimensions mentioned in the text.
func (s *Solver) solveGeometry(ctx context.Context, problem string, log *StepLog) (string, *Visualization, error) {
	lower := strings.ToLower(problem)
	nums := allNumbers(lower)

	wantVolume := strings.Contains(lower, "volume")
	wantSurface := strings.Contains(lower, "surface")
	wantPerimeter := strings.Contains(lower, "perimeter") || strings.Contains(lower, "circumference")

	switch {
	case strings.Contains(lower, "circle"):
		r, ok := circleRadius(lower, nums, log)
		if !ok {
			return "", nil, fmt.Errorf("geometry: no radius or diameter given for the circle")
		}
		if wantPerimeter {
			c := 2 * math.Pi * r
			log.Add("Apply the circumference formula", fmt.Sprintf("C = 2πr = 2π·%s = %s", fmtNum(r), fmtNum(roundNice(c))))
			return "C = " + fmtNum(roundNice(c)), nil, nil
		}
		a := math.Pi * r * r
		log.Add("Apply the area formula", fmt.Sprintf("A = πr² = π·%s² = %s", fmtNum(r), fmtNum(roundNice(a))))
		return "A = " + fmtNum(roundNice(a)), nil, nil

	case strings.Contains(lower, "sphere"):
		r, ok := circleRadius(lower, nums, log)
		if !ok {
			return "", nil, fmt.Errorf("geometry: no radius or diameter given for the sphere")
		}
		if wantSurface {
			a := 4 * math.Pi * r * r
			log.Add("Apply the surface area formula", fmt.Sprintf("S = 4πr² = %s", fmtNum(roundNice(a))))
			return "S = " + fmtNum(roundNice(a)), nil, nil
		}
		v := 4.0 / 3.0 * math.Pi * r * r * r
		log.Add("Apply the volume formula", fmt.Sprintf("V = (4/3)πr³ = (4/3)π·%s³ = %s", fmtNum(r), fmtNum(roundNice(v))))
		return "V = " + fmtNum(roundNice(v)), nil, nil

	case strings.Contains(lower, "cylinder"):
		r, h, ok := radiusAndHeight(lower, nums)
		if !ok {
			return "", nil, fmt.Errorf("geometry: a cylinder needs a radius and a height")
		}
		if wantSurface {
			a := 2 * math.Pi * r * (r + h)
			log.Add("Apply the surface area formula", fmt.Sprintf("S = 2πr(r + h) = %s", fmtNum(roundNice(a))))
			return "S = " + fmtNum(roundNice(a)), nil, nil
		}
		v := math.Pi * r * r * h
		log.Add("Apply the volume formula", fmt.Sprintf("V = πr²h = π·%s²·%s = %s", fmtNum(r), fmtNum(h), fmtNum(roundNice(v))))
		return "V = " + fmtNum(roundNice(v)), nil, nil

	case reWordCone.MatchString(lower):
		r, h, ok := radiusAndHeight(lower, nums)
		if !ok {
			return "", nil, fmt.Errorf("geometry: a cone needs a radius and a height")
		}
		v := math.Pi * r * r * h / 3
		log.Add("Apply the volume formula", fmt.Sprintf("V = (1/3)πr²h = (1/3)π·%s²·%s = %s", fmtNum(r), fmtNum(h), fmtNum(roundNice(v))))
		return "V = " + fmtNum(roundNice(v)), nil, nil

	case strings.Contains(lower, "triangle") || strings.Contains(lower, "hypotenuse"):
		return solveTriangle(lower, nums, wantPerimeter, log)

	case strings.Contains(lower, "rectangle"):
		l, lok := dimValue(lower, "length")
		w, wok := dimValue(lower, "width")
		if !lok || !wok {
			if len(nums) < 2 {
				return "", nil, fmt.Errorf("geometry: a rectangle needs a length and a width")
			}
			l, w = nums[0], nums[1]
		}
		if wantPerimeter {
			p := 2 * (l + w)
			log.Add("Apply the perimeter formula", fmt.Sprintf("P = 2(l + w) = 2(%s + %s) = %s", fmtNum(l), fmtNum(w), fmtNum(p)))
			return "P = " + fmtNum(p), nil, nil
		}
		a := l * w
		log.Add("Apply the area formula", fmt.Sprintf("A = l·w = %s·%s = %s", fmtNum(l), fmtNum(w), fmtNum(a)))
		return "A = " + fmtNum(a), nil, nil

	case reWordSquare.MatchString(lower):
		side, ok := dimValue(lower, "side")
		if !ok {
			if len(nums) == 0 {
				return "", nil, fmt.Errorf("geometry: no side length given for the square")
			}
			side = nums[0]
		}
		if wantPerimeter {
			p := 4 * side
			log.Add("Apply the perimeter formula", fmt.Sprintf("P = 4s = 4·%s = %s", fmtNum(side), fmtNum(p)))
			return "P = " + fmtNum(p), nil, nil
		}
		a := side * side
		log.Add("Apply the area formula", fmt.Sprintf("A = s² = %s² = %s", fmtNum(side), fmtNum(a)))
		return "A = " + fmtNum(a), nil, nil
	}
	return "", nil, fmt.Errorf("geometry: unrecognized shape in %q", problem)
}

// circleRadius reads a radius directly or halves a diameter.
func circleRadius(lower string, nums []float64, log *StepLog) (float64, bool) {
	if r, ok := dimValue(lower, "radius"); ok {
		return r, true
	}
	if d, ok := dimValue(lower, "diameter"); ok {
		log.Add("Halve the diameter", fmt.Sprintf("r = %s / 2 = %s", fmtNum(d), fmtNum(d/2)))
		return d / 2, true
	}
	if len(nums) > 0 {
		return nums[0], true
	}
	return 0, false
}

func radiusAndHeight(lower string, nums []float64) (r, h float64, ok bool) {
	r, rok := dimValue(lower, "radius")
	h, hok := dimValue(lower, "height")
	if rok && hok {
		return r, h, true
	}
	if len(nums) >= 2 {
		return nums[0], nums[1], true
	}
	return 0, 0, false
}

// solveTriangle covers the base-height area, Heron's formula, the
// Pythagorean hypotenuse and the perimeter.
func solveTriangle(lower string, nums []float64, wantPerimeter bool, log *StepLog) (string, *Visualization, error) {
	if strings.Contains(lower, "hypotenuse") {
		a, b, ok := twoLegs(lower, nums)
		if !ok {
			return "", nil, fmt.Errorf("geometry: the hypotenuse needs both legs")
		}
		c := math.Hypot(a, b)
		log.Add("Apply the Pythagorean theorem",
			fmt.Sprintf("c = √(a² + b²) = √(%s² + %s²) = %s", fmtNum(a), fmtNum(b), fmtNum(roundNice(c))))
		return "c = " + fmtNum(roundNice(c)), nil, nil
	}

	b, bok := dimValue(lower, "base")
	h, hok := dimValue(lower, "height")
	if bok && hok && !wantPerimeter {
		a := b * h / 2
		log.Add("Apply the area formula", fmt.Sprintf("A = (1/2)·b·h = (1/2)·%s·%s = %s", fmtNum(b), fmtNum(h), fmtNum(a)))
		return "A = " + fmtNum(a), nil, nil
	}

	if len(nums) >= 3 {
		x, y, z := nums[0], nums[1], nums[2]
		if wantPerimeter {
			p := x + y + z
			log.Add("Add the three sides", fmt.Sprintf("P = %s + %s + %s = %s", fmtNum(x), fmtNum(y), fmtNum(z), fmtNum(p)))
			return "P = " + fmtNum(p), nil, nil
		}
		sp := (x + y + z) / 2
		under := sp * (sp - x) * (sp - y) * (sp - z)
		if under < 0 {
			return "", nil, fmt.Errorf("geometry: sides %s, %s, %s do not form a triangle", fmtNum(x), fmtNum(y), fmtNum(z))
		}
		a := math.Sqrt(under)
		log.Add("Apply Heron's formula with s = (a+b+c)/2",
			fmt.Sprintf("s = %s, A = √(s(s-a)(s-b)(s-c)) = %s", fmtNum(sp), fmtNum(roundNice(a))))
		return "A = " + fmtNum(roundNice(a)), nil, nil
	}

	if bok && hok {
		a := b * h / 2
		log.Add("Apply the area formula", fmt.Sprintf("A = (1/2)·b·h = %s", fmtNum(a)))
		return "A = " + fmtNum(a), nil, nil
	}
	if len(nums) >= 2 {
		a := nums[0] * nums[1] / 2
		log.Add("Apply the area formula", fmt.Sprintf("A = (1/2)·%s·%s = %s", fmtNum(nums[0]), fmtNum(nums[1]), fmtNum(a)))
		return "A = " + fmtNum(a), nil, nil
	}
	return "", nil, fmt.Errorf("geometry: not enough triangle dimensions")
}

func twoLegs(lower string, nums []float64) (float64, float64, bool) {
	if v, ok := dimValue(lower, "leg"); ok {
		rest := strings.SplitN(lower, fmtNum(v), 2)
		if len(rest) == 2 {
			if more := allNumbers(rest[1]); len(more) > 0 {
				return v, more[0], true
			}
		}
	}
	if len(nums) >= 2 {
		return nums[0], nums[1], true
	}
	return 0, 0, false
}
