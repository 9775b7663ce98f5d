package lcoe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lcoe-calculator/internal/model"
)

func TestTotalCapex_DividesByCapacity(t *testing.T) {
	capex, err := TotalCapex(100, 4)
	require.NoError(t, err)
	assert.Equal(t, 25.0, capex)

	_, err = TotalCapex(100, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTotalCapex_OverflowNamesTheCause(t *testing.T) {
	var inputErr *model.InputError

	_, err := TotalCapex(1e308, 0.5)
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "capex_per_mw", inputErr.Field)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = TotalCapex(34400000, math.SmallestNonzeroFloat64)
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "capacity", inputErr.Field)
}

func TestOpexSeries(t *testing.T) {
	series, sum := OpexSeries(100, 3)
	require.Len(t, series, 3)
	assert.InDelta(t, 100.0, series[0], 1e-12)
	assert.InDelta(t, 105.0, series[1], 1e-12)
	assert.InDelta(t, 110.25, series[2], 1e-12)
	assert.InDelta(t, 315.25, sum, 1e-9)

	empty, zero := OpexSeries(100, 0)
	assert.Empty(t, empty)
	assert.Zero(t, zero)
}

func TestEnergySeries(t *testing.T) {
	series, sum := EnergySeries(1000, 3)
	require.Len(t, series, 3)
	assert.InDelta(t, 1000.0, series[0], 1e-12)
	assert.InDelta(t, 995.0, series[1], 1e-9)
	assert.InDelta(t, 990.025, series[2], 1e-9)
	assert.InDelta(t, 2985.025, sum, 1e-9)
}

func TestCashFlows_FinancingStopsAtTenure(t *testing.T) {
	flows := CashFlows([]float64{1, 2, 3, 4}, 10, 2)
	assert.Equal(t, []float64{11, 12, 3, 4}, flows)

	assert.Equal(t, []float64{1, 2}, CashFlows([]float64{1, 2}, 10, 0))
	assert.Equal(t, []float64{11, 12}, CashFlows([]float64{1, 2}, 10, 5))
}

func TestPresentValue_FirstFlowIsOnePeriodOut(t *testing.T) {
	// 110 at the end of year 1 at 10% is worth exactly 100 today.
	assert.InDelta(t, 100.0, PresentValue([]float64{110}, 10), 1e-9)
	assert.InDelta(t, 100.0+100.0, PresentValue([]float64{110, 121}, 10), 1e-9)

	assert.Equal(t, 6.0, PresentValue([]float64{1, 2, 3}, 0))
	assert.Zero(t, PresentValue(nil, 7))
}

func TestLevelizedCost_GuardsZeroEnergy(t *testing.T) {
	assert.Equal(t, 3.0, LevelizedCost(10, 20, 10))
	assert.Zero(t, LevelizedCost(10, 20, 0))
	assert.Zero(t, LevelizedCost(10, 20, -1))
}

func TestCapacityUtilization(t *testing.T) {
	assert.InDelta(t, 0.5, CapacityUtilization(4380, 1), 1e-12)
	assert.InDelta(t, 2.0, CapacityUtilization(17520, 1), 1e-12)
	assert.Zero(t, CapacityUtilization(100, 0))
	assert.Zero(t, CapacityUtilization(-100, 1))
}

func TestAmortizedPayment(t *testing.T) {
	assert.Zero(t, AmortizedPayment(1000, 5, 0))
	assert.InDelta(t, 100.0, AmortizedPayment(1000, 0, 10), 1e-12)

	p := AmortizedPayment(1000, 10, 2)
	// Balance after two payments must be zero.
	balance := 1000.0
	for i := 0; i < 2; i++ {
		balance = balance*1.1 - p
	}
	assert.InDelta(t, 0, balance, 1e-9)
	assert.False(t, math.IsNaN(p))
}
