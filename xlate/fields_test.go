package xlate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFields(t *testing.T) {
	got := splitFields([]byte("a\tbb\t\tccc"))
	want := []string{"a", "bb", "", "ccc"}
	assert.Len(t, got, len(want))
	for i, w := range want {
		assert.Equal(t, w, string(got[i]))
	}
}

func TestSplitFieldsNoTabs(t *testing.T) {
	got := splitFields([]byte("solo"))
	assert.Len(t, got, 1)
	assert.Equal(t, "solo", string(got[0]))
}

func TestAppendLine(t *testing.T) {
	got := appendLine(nil, []byte("a"), []byte("b"), []byte("c"))
	assert.Equal(t, "a\tb\tc\n", string(got))
}
