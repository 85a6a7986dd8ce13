package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringToHashStable(t *testing.T) {
	assert.Equal(t, StringToHash("Speed"), StringToHash("Speed"))
	assert.NotEqual(t, StringToHash("Speed"), StringToHash("MotionSpeed"))
}

func TestParamsSetAndGet(t *testing.T) {
	p := NewParams()
	p.SetFloat("Speed", 1.25)
	p.SetBool("Grounded", true)

	speed, ok := p.Float("Speed")
	require.True(t, ok)
	assert.Equal(t, 1.25, speed)

	grounded, ok := p.Bool("Grounded")
	require.True(t, ok)
	assert.True(t, grounded)

	_, ok = p.Float("Grounded")
	assert.False(t, ok, "kind mismatch")
	_, ok = p.Bool("Missing")
	assert.False(t, ok)

	v, ok := p.Get(StringToHash("Speed"))
	require.True(t, ok)
	assert.Equal(t, "Speed", v.Name)
}

func TestParamsKeepFirstSetOrder(t *testing.T) {
	p := NewParams()
	p.SetBool("Grounded", true)
	p.SetFloat("Speed", 2)
	p.SetFloat("MotionSpeed", 1)
	p.SetFloat("Speed", 0.5)

	assert.Equal(t, 3, p.Len())
	assert.Equal(t, "[Grounded=true Speed=0.500 MotionSpeed=1.000]", p.String())
}
