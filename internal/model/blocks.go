package model

import (
	"bytes"
	"encoding/json"
)

// Block wraps one raw content block of a review page.
type Block struct {
	Value map[string]any `json:"value"`
}

// Type returns the block's type tag, e.g. "paragraph".
func (b Block) Type() string {
	t, _ := b.Value["type"].(string)
	return t
}

// BlockMap maps block ids to blocks and remembers source order.
// A nil *BlockMap means the page has no body at all.
type BlockMap struct {
	ids    []string
	blocks map[string]Block
}

func NewBlockMap() *BlockMap {
	return &BlockMap{blocks: make(map[string]Block)}
}

// Set stores a block. Re-setting an id keeps its original position.
func (m *BlockMap) Set(id string, value map[string]any) {
	if _, exists := m.blocks[id]; !exists {
		m.ids = append(m.ids, id)
	}
	m.blocks[id] = Block{Value: value}
}

func (m *BlockMap) Get(id string) (Block, bool) {
	if m == nil {
		return Block{}, false
	}
	b, ok := m.blocks[id]
	return b, ok
}

func (m *BlockMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.ids)
}

// IDs returns block ids in source order.
func (m *BlockMap) IDs() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.ids))
	copy(out, m.ids)
	return out
}

// Blocks returns the blocks in source order.
func (m *BlockMap) Blocks() []Block {
	if m == nil {
		return nil
	}
	out := make([]Block, 0, len(m.ids))
	for _, id := range m.ids {
		out = append(out, m.blocks[id])
	}
	return out
}

// MarshalJSON encodes the map as a JSON object in source order.
func (m *BlockMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range m.ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.blocks[id])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
