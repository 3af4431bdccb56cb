package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		err    error
		wantOK bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("x"), false},
		{"container", FromKind(TagBanned.Kind()), true},
		{"wrapped container", fmt.Errorf("handler: %w", FromKind(TagBanned.Kind())), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, ok := AsError(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Nil(t, e)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	k, ok := KindOf(fmt.Errorf("x: %w", Wrap(errors.New("y"), TagLocked.Kind())))
	assert.True(t, ok)
	assert.Equal(t, TagLocked.Kind(), k)

	_, ok = KindOf(Unclassified(errors.New("y")))
	assert.False(t, ok)

	_, ok = KindOf(errors.New("y"))
	assert.False(t, ok)
}

func TestHasTag(t *testing.T) {
	t.Parallel()

	err := FromKind(RegistrationDenied("no"))
	assert.True(t, HasTag(err, TagRegistrationDenied))
	assert.False(t, HasTag(err, TagBanned))
	assert.False(t, HasTag(nil, TagBanned))
}

func TestIsRecordNotFound(t *testing.T) {
	t.Parallel()

	assert.True(t, IsRecordNotFound(rowNotFound{}))
	assert.True(t, IsRecordNotFound(fmt.Errorf("wrapped: %w", rowNotFound{})))
	assert.True(t, IsRecordNotFound(Unclassified(rowNotFound{})))
	assert.False(t, IsRecordNotFound(errors.New("record not found")))
	assert.False(t, IsRecordNotFound(nil))
}

func TestIsUnclassified(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUnclassified(Unclassified(errors.New("x"))))
	assert.False(t, IsUnclassified(Unclassified(errors.New("x")).WithKind(TagUnknown.Kind())))
	assert.False(t, IsUnclassified(FromKind(TagUnknown.Kind())))
	assert.False(t, IsUnclassified(errors.New("x")))
}
