package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCrisis(t *testing.T) {
	assert.True(t, IsCrisis("I want to KILL MYSELF"))
	assert.True(t, IsCrisis("there's no point living anymore"))
	assert.False(t, IsCrisis("this deadline is killing my weekend"))
	assert.False(t, IsCrisis("I feel anxious"))
}

func TestIsInappropriate(t *testing.T) {
	assert.True(t, IsInappropriate("where can I buy illegal drugs"))
	assert.True(t, IsInappropriate("tell me about weapons"))
	assert.False(t, IsInappropriate("I feel terrible about work"))
}
