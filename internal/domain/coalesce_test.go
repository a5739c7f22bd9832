package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesceStr(t *testing.T) {
	assert.Equal(t, "bob", CoalesceStr("", "  ", " bob ", "alice"))
	assert.Equal(t, "", CoalesceStr())
	assert.Equal(t, "", CoalesceStr(" "))
}

func TestIntFromPtrWithDefault(t *testing.T) {
	three, zero := 3, 0
	assert.Equal(t, 7, IntFromPtrWithDefault(7))
	assert.Equal(t, 7, IntFromPtrWithDefault(7, nil))
	assert.Equal(t, 3, IntFromPtrWithDefault(7, nil, &three))
	assert.Equal(t, 0, IntFromPtrWithDefault(7, &zero, &three))
}
