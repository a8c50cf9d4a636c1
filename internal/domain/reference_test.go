package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseReference_Valid(t *testing.T) {
	want := primitive.NewObjectID()

	got, err := ParseReference("userId", want.Hex())

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestParseReference_ZeroIDIsWellFormed(t *testing.T) {
	got, err := ParseReference("userId", "000000000000000000000000")

	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestParseReference_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"too short", "abc123"},
		{"not hex", "zzzzzzzzzzzzzzzzzzzzzzzz"},
		{"too long", "0123456789abcdef0123456789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReference("trainingPlanId", tt.raw)

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidReference))

			var refErr *InvalidReferenceError
			require.True(t, errors.As(err, &refErr))
			assert.Equal(t, "trainingPlanId", refErr.Field)
			assert.Equal(t, tt.raw, refErr.Value)
		})
	}
}

func TestParseOptionalReference(t *testing.T) {
	id, err := ParseOptionalReference("nutritionPlanId", "")
	require.NoError(t, err)
	assert.Nil(t, id)

	want := primitive.NewObjectID()
	id, err = ParseOptionalReference("nutritionPlanId", want.Hex())
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, want, *id)

	_, err = ParseOptionalReference("nutritionPlanId", "nope")
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestParsePlanLevel(t *testing.T) {
	level, ok := ParsePlanLevel("  Advanced ")
	assert.True(t, ok)
	assert.Equal(t, LevelAdvanced, level)

	_, ok = ParsePlanLevel("expert")
	assert.False(t, ok)
}
