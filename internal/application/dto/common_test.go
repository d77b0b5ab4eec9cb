package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sonu0702/cozy-api/internal/application/dto"
)

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, dto.ParsePage(""))
	assert.Equal(t, 1, dto.ParsePage("abc"))
	assert.Equal(t, 1, dto.ParsePage("0"))
	assert.Equal(t, 1, dto.ParsePage("-2"))
	assert.Equal(t, 3, dto.ParsePage("3"))
}

func TestParsePageSize(t *testing.T) {
	assert.Equal(t, 10, dto.ParsePageSize(""))
	assert.Equal(t, 10, dto.ParsePageSize("x"))
	assert.Equal(t, 10, dto.ParsePageSize("0"))
	assert.Equal(t, 25, dto.ParsePageSize("25"))
}
