package push

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizRecords(t *testing.T) {
	t.Run("encodes answers at sequential record types", func(t *testing.T) {
		records := quizRecords([]string{"yes", "no", "日本"})
		require.Len(t, records, 3)

		assert.Equal(t, uint64(80509), records[0].Type)
		assert.Equal(t, []byte("yes"), records[0].Value)
		assert.Equal(t, uint64(80510), records[1].Type)
		assert.Equal(t, []byte("no"), records[1].Value)
		assert.Equal(t, uint64(80511), records[2].Type)
		assert.Equal(t, []byte("日本"), records[2].Value)
	})

	t.Run("no answers yields no records", func(t *testing.T) {
		assert.Nil(t, quizRecords(nil))
		assert.Nil(t, quizRecords([]string{}))
	})
}
