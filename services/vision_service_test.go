package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooksLikeFood(t *testing.T) {
	assert.True(t, LooksLikeFood([]string{"Furniture", "Plate", "Table"}))
	assert.True(t, LooksLikeFood([]string{"FOOD"}))
	assert.False(t, LooksLikeFood([]string{"Car", "Road", "Building"}))
	assert.False(t, LooksLikeFood(nil))
}
