package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_InsertContains(t *testing.T) {
	s := NewSet(16)
	assert.False(t, s.Contains(3))
	s.Insert(3)
	s.Insert(7)
	s.Insert(3) // duplicate insert is a no-op
	assert.True(t, s.Contains(3))
	assert.True(t, s.Contains(7))
	assert.False(t, s.Contains(4))
	assert.Equal(t, 2, s.Len())
}

func TestSet_OutOfRange(t *testing.T) {
	s := NewSet(4)
	assert.False(t, s.Contains(100))
}

func TestSet_Clear(t *testing.T) {
	s := NewSet(8)
	s.Insert(1)
	s.Insert(2)
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Contains(1))
	s.Insert(2)
	assert.True(t, s.Contains(2))
}

func TestSet_ValuesKeepInsertionOrder(t *testing.T) {
	s := NewSet(8)
	for _, v := range []uint32{5, 1, 7, 0} {
		s.Insert(v)
	}
	assert.Equal(t, []uint32{5, 1, 7, 0}, s.Values())
}

func TestSet_GrowWhileWalking(t *testing.T) {
	// The closure walk appends while iterating by index; values inserted
	// mid-walk must be visited too.
	s := NewSet(8)
	s.Insert(0)
	seen := 0
	for i := 0; i < s.Len(); i++ {
		v := s.Values()[i]
		seen++
		if v < 3 {
			s.Insert(v + 1)
		}
	}
	assert.Equal(t, 4, seen)
}
