package route_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/marche-sim-oss/entity/route"
	"github.com/tsinghua-fib-lab/marche-sim-oss/utils/config"
)

func TestRouteConsumeOrder(t *testing.T) {
	r := route.New(&config.Route{Stations: []config.Station{
		{Name: "A", S: 300, Dwell: 30},
		{Name: "B", S: 800, Dwell: 30},
	}})
	assert.Equal(t, 2, r.Len())
	assert.False(t, r.Finished())

	st, ok := r.Next()
	assert.True(t, ok)
	assert.Equal(t, "A", st.Name)
	assert.Equal(t, 300.0, st.S)

	// Next does not advance by itself
	st, _ = r.Next()
	assert.Equal(t, "A", st.Name)

	r.Consume()
	st, ok = r.Next()
	assert.True(t, ok)
	assert.Equal(t, "B", st.Name)

	r.Consume()
	_, ok = r.Next()
	assert.False(t, ok)
	assert.True(t, r.Finished())

	// consuming past the end is a no-op
	r.Consume()
	assert.True(t, r.Finished())
}
