package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record_AppendsAlignedPoints(t *testing.T) {
	// GIVEN a queue with two ships and a bank with one of two berths occupied
	cfg := smallPortConfig()
	cfg.Berths.Count = 2
	bank := NewBerthBank(cfg)
	bank.Moor(0, 0, &Ship{ID: 9})
	q := &ShipQueue{}
	q.Enqueue(&Ship{ID: 1, ArrivalMinute: 2})
	q.Enqueue(&Ship{ID: 2, ArrivalMinute: 6})

	// WHEN recorded at minute 10
	m := NewMetrics()
	m.Record(10, q, bank)

	// THEN one point lands in every series
	assert.Equal(t, []int{10}, m.Minutes)
	assert.Equal(t, []int{2}, m.QueueLength)
	assert.Equal(t, []float64{6}, m.AverageWait)
	assert.Equal(t, []float64{0.5}, m.Utilization)
}

func TestMetrics_InPort(t *testing.T) {
	m := NewMetrics()
	m.Admitted = 12
	m.Departed = 5
	assert.Equal(t, 7, m.InPort())
}
