package classify

import "strings"

// Bucket holds lines of one category in input order
type Bucket []string

// BucketSet partitions one run's lines into a bucket per category
type BucketSet struct {
	buckets map[Category]Bucket
}

// NewBucketSet returns a set with an empty bucket for every category
func NewBucketSet() BucketSet {
	s := BucketSet{buckets: make(map[Category]Bucket, len(Categories))}
	for _, c := range Categories {
		s.buckets[c] = Bucket{}
	}
	return s
}

// Get returns the bucket for c
func (s BucketSet) Get(c Category) Bucket {
	return s.buckets[c]
}

// Len returns the total number of lines across all buckets
func (s BucketSet) Len() int {
	n := 0
	for _, b := range s.buckets {
		n += len(b)
	}
	return n
}

func (s BucketSet) add(c Category, line string) {
	s.buckets[c] = append(s.buckets[c], line)
}

// Aggregate buckets lines with DefaultRules
func Aggregate(lines []string) BucketSet {
	return defaultClassifier.Aggregate(lines)
}

// Aggregate classifies each non-blank line by its trimmed form and stores
// the original, untrimmed line in the matching bucket.
func (c *Classifier) Aggregate(lines []string) BucketSet {
	set := NewBucketSet()
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		set.add(c.Classify(trimmed), line)
	}
	return set
}
