package sdkgate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProbeMounted(t *testing.T) {
	t.Setenv("SDK_PATH", t.TempDir())
	Probe()

	assert.True(t, Mounted())
	st := Current()
	assert.True(t, st.Mounted)
	assert.False(t, st.ProbedAt.IsZero())
}

func TestProbeAbsent(t *testing.T) {
	t.Setenv("SDK_PATH", "/nonexistent/sdk-dist")
	Probe()

	assert.False(t, Mounted())
	assert.Equal(t, "/nonexistent/sdk-dist", Current().Path)
}
