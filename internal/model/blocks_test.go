package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockMap_PreservesOrder(t *testing.T) {
	m := NewBlockMap()
	m.Set("b", map[string]any{"type": "paragraph"})
	m.Set("a", map[string]any{"type": "heading_1"})
	m.Set("b", map[string]any{"type": "quote"})

	assert.Equal(t, []string{"b", "a"}, m.IDs())
	assert.Equal(t, 2, m.Len())

	b, ok := m.Get("b")
	require.True(t, ok)
	assert.Equal(t, "quote", b.Type())

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"b":{"value":{"type":"quote"}},"a":{"value":{"type":"heading_1"}}}`, string(data))
}

func TestBlockMap_NilVersusEmpty(t *testing.T) {
	var absent *BlockMap
	assert.Equal(t, 0, absent.Len())
	assert.Nil(t, absent.Blocks())

	type props struct {
		Page *BlockMap `json:"page"`
	}

	data, err := json.Marshal(props{Page: absent})
	require.NoError(t, err)
	assert.JSONEq(t, `{"page":null}`, string(data))

	data, err = json.Marshal(props{Page: NewBlockMap()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"page":{}}`, string(data))
}
