package sensitivity

import (
	"errors"
	"math"
	"sort"

	"github.com/sourcegraph/conc/iter"

	"lcoe-calculator/internal/lcoe"
	"lcoe-calculator/internal/model"
)

// Bar is one parameter's row in a tornado diagram.
type Bar struct {
	Parameter model.Parameter `json:"parameter"`

	BaseValue float64 `json:"base_value"`
	LowValue  float64 `json:"low_value"`
	HighValue float64 `json:"high_value"`

	LowLCOE  float64 `json:"low_lcoe_per_kwh"`
	HighLCOE float64 `json:"high_lcoe_per_kwh"`

	// Spread is max(trial LCOE) - min(trial LCOE).
	Spread float64 `json:"spread"`
}

// Tornado perturbs each parameter by ±deltaPct percent of its base value and
// ranks parameters by the resulting LCOE spread, widest first. Ties keep the
// order of params. An empty params list means model.AllParameters().
func Tornado(base model.ProjectInputs, params []model.Parameter, deltaPct float64) ([]Bar, float64, error) {
	if deltaPct <= 0 || deltaPct >= 100 || math.IsNaN(deltaPct) {
		return nil, 0, errors.New("sensitivity: delta must be within (0, 100) percent")
	}
	baseRes, err := lcoe.Evaluate(base)
	if err != nil {
		return nil, 0, err
	}
	if err := baseRes.Err(); err != nil {
		return nil, 0, err
	}
	if len(params) == 0 {
		params = model.AllParameters()
	}
	for _, p := range params {
		if _, err := base.Get(p); err != nil {
			return nil, 0, err
		}
	}

	type outcome struct {
		bar Bar
		err error
	}
	outcomes := iter.Map(params, func(p *model.Parameter) outcome {
		b, err := tornadoBar(base, *p, deltaPct/100)
		return outcome{bar: b, err: err}
	})

	bars := make([]Bar, 0, len(outcomes))
	for _, o := range outcomes {
		if o.err != nil {
			return nil, 0, o.err
		}
		bars = append(bars, o.bar)
	}

	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Spread > bars[j].Spread
	})
	return bars, baseRes.LCOEPerKWh, nil
}

func tornadoBar(base model.ProjectInputs, p model.Parameter, delta float64) (Bar, error) {
	v, err := base.Get(p)
	if err != nil {
		return Bar{}, err
	}
	low, high := v*(1-delta), v*(1+delta)
	if p.IsInteger() {
		low, high = math.Round(low), math.Round(high)
		if p == model.ParamProjectLifetime && low < 1 {
			low = 1
		}
	}

	lowPt := trial(base, p, low)
	if lowPt.Err != nil {
		return Bar{}, lowPt.Err
	}
	highPt := trial(base, p, high)
	if highPt.Err != nil {
		return Bar{}, highPt.Err
	}

	b := Bar{
		Parameter: p,
		BaseValue: v,
		LowValue:  low,
		HighValue: high,
		LowLCOE:   lowPt.LCOEPerKWh(),
		HighLCOE:  highPt.LCOEPerKWh(),
	}
	b.Spread = math.Max(b.LowLCOE, b.HighLCOE) - math.Min(b.LowLCOE, b.HighLCOE)
	return b, nil
}
