package monitoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigationDoneCountsByOutcome(t *testing.T) {
	m := New()

	m.NavigationDone("ok", 10*time.Millisecond)
	m.NavigationDone("ok", 20*time.Millisecond)
	m.NavigationDone("network", 5*time.Millisecond)
	m.TabCreated()

	families, err := m.Gatherer().Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	for _, family := range families {
		switch family.GetName() {
		case "asterix_navigations_total":
			for _, metric := range family.GetMetric() {
				for _, label := range metric.GetLabel() {
					if label.GetName() == "outcome" {
						counts[label.GetValue()] = metric.GetCounter().GetValue()
					}
				}
			}
		case "asterix_tabs_open":
			require.Len(t, family.GetMetric(), 1)
			assert.Equal(t, float64(1), family.GetMetric()[0].GetGauge().GetValue())
		}
	}

	assert.Equal(t, float64(2), counts["ok"])
	assert.Equal(t, float64(1), counts["network"])
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics

	m.NavigationDone("ok", time.Millisecond)
	m.TabCreated()

	families, err := m.Gatherer().Gather()
	require.NoError(t, err)
	assert.Empty(t, families)
}

func TestIndependentInstancesDoNotCollide(t *testing.T) {
	a := New()
	b := New()

	a.NavigationDone("ok", time.Millisecond)
	b.TabCreated()
}
