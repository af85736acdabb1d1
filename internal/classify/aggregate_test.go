package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	set := Aggregate([]string{"42", "-17", "3.14", "hello", "", "2.5e10"})

	assert.Equal(t, Bucket{"42", "-17"}, set.Get(Integer))
	assert.Equal(t, Bucket{"3.14", "2.5e10"}, set.Get(Float))
	assert.Equal(t, Bucket{"hello"}, set.Get(String))
	assert.Equal(t, 5, set.Len())
}

func TestAggregateKeepsOriginalLine(t *testing.T) {
	set := Aggregate([]string{"  12  ", "\t3.5", " word "})

	assert.Equal(t, Bucket{"  12  "}, set.Get(Integer))
	assert.Equal(t, Bucket{"\t3.5"}, set.Get(Float))
	assert.Equal(t, Bucket{" word "}, set.Get(String))
}

func TestAggregateSkipsBlankLines(t *testing.T) {
	set := Aggregate([]string{"", "   ", "\t", "\r"})

	for _, c := range Categories {
		assert.NotNil(t, set.Get(c), "bucket %s should exist", c)
		assert.Empty(t, set.Get(c), "bucket %s should be empty", c)
	}
	assert.Zero(t, set.Len())
}

func TestAggregatePartitionsInOrder(t *testing.T) {
	lines := []string{"a", "1", "b", "1.5", "2", "", "c", "5.", "-3", "9e9"}
	set := Aggregate(lines)

	surviving := 0
	for _, l := range lines {
		if l != "" {
			surviving++
		}
	}
	assert.Equal(t, surviving, set.Len())

	// Each bucket must be a sub-sequence of the input.
	for _, c := range Categories {
		pos := 0
		for _, l := range set.Get(c) {
			for pos < len(lines) && lines[pos] != l {
				pos++
			}
			if pos == len(lines) {
				t.Fatalf("bucket %s: %q out of input order", c, l)
			}
			pos++
		}
	}

	assert.Equal(t, Bucket{"1", "2", "-3"}, set.Get(Integer))
	assert.Equal(t, Bucket{"1.5", "9e9"}, set.Get(Float))
	assert.Equal(t, Bucket{"a", "b", "c", "5."}, set.Get(String))
}
