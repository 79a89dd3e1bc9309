package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordManager_HashAndVerify(t *testing.T) {
	pm := NewPasswordManager()

	hashed, err := pm.Hash("Sup3rSecret")
	assert.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret", hashed)

	assert.True(t, pm.Verify("Sup3rSecret", hashed))
	assert.False(t, pm.Verify("sup3rsecret", hashed))
	assert.False(t, pm.Verify("Sup3rSecret", "not-a-hash"))
}

func TestPasswordManager_CheckStrength(t *testing.T) {
	pm := NewPasswordManager()

	cases := []struct {
		password string
		ok       bool
	}{
		{"Valid123", true},
		{"short1A", false},
		{"nouppercase1", false},
		{"NOLOWERCASE1", false},
		{"NoDigitsHere", false},
	}

	for _, tc := range cases {
		ok, msg := pm.CheckStrength(tc.password)
		assert.Equal(t, tc.ok, ok, tc.password)
		if !tc.ok {
			assert.NotEmpty(t, msg)
		}
	}
}
