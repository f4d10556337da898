package layout

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将展平后的结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// BoxNode 是盒子树的 JSON 快照。
type BoxNode struct {
	Kind     string     `json:"kind"`
	Leaf     string     `json:"leaf,omitempty"`
	Text     string     `json:"text,omitempty"`
	Level    int        `json:"level"`
	Rect     Rectangle  `json:"rect"`
	Overflow *Overflows `json:"overflow,omitempty"`
	Children []BoxNode  `json:"children,omitempty"`
}

// Snapshot 记录 b 及其子树当前的位置与溢出情况。
func Snapshot(b *Box) BoxNode {
	n := BoxNode{Kind: b.Kind.String(), Level: b.Level(), Rect: b.Rectangle()}
	if b.Kind == KindLeaf {
		n.Leaf = b.Leaf.Kind.String()
		n.Text = b.Leaf.Text
	}
	if o := OverflowOf(b); !o.IsEmpty() {
		n.Overflow = &o
	}
	for _, c := range b.Children() {
		n.Children = append(n.Children, Snapshot(c))
	}
	return n
}

// WriteBoxTreeJSON 将每一页的盒子树输出为 JSON。
func WriteBoxTreeJSON(pages []*Box, path string) error {
	nodes := make([]BoxNode, 0, len(pages))
	for _, p := range pages {
		nodes = append(nodes, Snapshot(p))
	}
	data, err := json.MarshalIndent(nodes, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
