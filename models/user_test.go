package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordHashing(t *testing.T) {
	var user User
	user.SetPassword("secret123")

	assert.NotEqual(t, "secret123", string(user.Password))
	assert.NoError(t, user.ComparePassword("secret123"))
	assert.Error(t, user.ComparePassword("wrong"))
}
