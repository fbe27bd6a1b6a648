package models

import (
	"encoding/json"
	"fmt"
	"time"

	"strata/internal/domain"
)

// NormalizeRef collapses the three "no reference" encodings (absent pointer,
// JSON null, empty string) into nil. Every code path that buckets rows by a
// folder or parent reference must go through this helper.
func NormalizeRef(ref *string) *string {
	if ref == nil || *ref == "" {
		return nil
	}
	return ref
}

// TreeNode is the polymorphic unit of tree assembly: exactly one of Folder,
// Entity or Selected is set. Folder nodes carry an ordered Children sequence.
type TreeNode struct {
	Folder   *Folder
	Entity   *Entity
	Selected *SelectedView
	Children []*TreeNode
}

// FolderNode wraps a folder record as a tree node.
func FolderNode(f *Folder) *TreeNode {
	return &TreeNode{Folder: f, Children: []*TreeNode{}}
}

// EntityNode wraps a hierarchy entity as a leaf node.
func EntityNode(e *Entity) *TreeNode {
	return &TreeNode{Entity: e}
}

// SelectedNode wraps a selected-view row as a leaf node.
func SelectedNode(sv *SelectedView) *TreeNode {
	return &TreeNode{Selected: sv}
}

// IsFolder reports whether the node is a grouping folder.
func (n *TreeNode) IsFolder() bool {
	return n.Folder != nil
}

// ID returns the wrapped record's id.
func (n *TreeNode) ID() string {
	switch {
	case n.Folder != nil:
		return n.Folder.ID
	case n.Entity != nil:
		return n.Entity.ID
	case n.Selected != nil:
		return n.Selected.ID
	}
	return ""
}

// Name returns the wrapped record's display name.
func (n *TreeNode) Name() string {
	switch {
	case n.Folder != nil:
		return n.Folder.Name
	case n.Entity != nil:
		return n.Entity.Name
	case n.Selected != nil:
		return n.Selected.ViewName
	}
	return ""
}

// SortKey returns the wrapped record's ordering key.
func (n *TreeNode) SortKey() int64 {
	switch {
	case n.Folder != nil:
		return n.Folder.SortKey
	case n.Entity != nil:
		return n.Entity.SortKey
	case n.Selected != nil:
		return n.Selected.SortKey
	}
	return 0
}

// BucketKey returns the normalized grouping reference: the parent folder id for
// folder nodes, the containing folder id for leaves. Nil means root.
func (n *TreeNode) BucketKey() *string {
	switch {
	case n.Folder != nil:
		return NormalizeRef(n.Folder.ParentID)
	case n.Entity != nil:
		return NormalizeRef(n.Entity.FolderID)
	case n.Selected != nil:
		return NormalizeRef(n.Selected.FolderID)
	}
	return nil
}

// MarshalJSON flattens the union into the wire shape: record fields at the top
// level, a "type" discriminator, and "children" on folder nodes.
func (n *TreeNode) MarshalJSON() ([]byte, error) {
	switch {
	case n.Folder != nil:
		children := n.Children
		if children == nil {
			children = []*TreeNode{}
		}
		return json.Marshal(struct {
			Folder
			NodeType string      `json:"type"`
			Children []*TreeNode `json:"children"`
		}{Folder: *n.Folder, NodeType: "folder", Children: children})
	case n.Entity != nil:
		return json.Marshal(n.Entity)
	case n.Selected != nil:
		return json.Marshal(struct {
			SelectedView
			NodeType string `json:"type"`
		}{SelectedView: *n.Selected, NodeType: "selected"})
	}
	return nil, fmt.Errorf("tree node has no record")
}

// treeNodeWire is the superset of every node shape on the wire.
type treeNodeWire struct {
	ID        string      `json:"id"`
	Code      string      `json:"code"`
	Name      string      `json:"name"`
	Type      string      `json:"type"`
	FolderID  *string     `json:"folder_id"`
	SortKey   int64       `json:"sort_order"`
	CreatedAt time.Time   `json:"created_at"`
	ParentID  *string     `json:"parent_id"`
	OwnerID   *string     `json:"owner_id"`
	Expanded  bool        `json:"expanded"`
	Children  []*TreeNode `json:"children"`

	ShareholderID *string `json:"shareholder_id"`
	CompanyID     *string `json:"company_id"`
	ProjectID     *string `json:"project_id"`
	TableID       *string `json:"table_id"`
	Color         string  `json:"color"`
	ViewType      string  `json:"view_type"`

	ViewID     string `json:"view_id"`
	ViewName   string `json:"view_name"`
	TableName  string `json:"table_name"`
	TableColor string `json:"table_color"`
}

// UnmarshalJSON rebuilds the union from the "type" discriminator.
func (n *TreeNode) UnmarshalJSON(data []byte) error {
	var w treeNodeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	switch w.Type {
	case "folder":
		n.Folder = &Folder{
			ID:        w.ID,
			Code:      w.Code,
			Name:      w.Name,
			Type:      w.Type,
			ParentID:  w.ParentID,
			OwnerID:   w.OwnerID,
			Expanded:  w.Expanded,
			SortKey:   w.SortKey,
			CreatedAt: w.CreatedAt,
		}
		n.Children = w.Children
		if n.Children == nil {
			n.Children = []*TreeNode{}
		}
	case "selected":
		n.Selected = &SelectedView{
			ID:         w.ID,
			Code:       w.Code,
			ViewID:     w.ViewID,
			FolderID:   w.FolderID,
			SortKey:    w.SortKey,
			CreatedAt:  w.CreatedAt,
			ViewName:   w.ViewName,
			ViewType:   w.ViewType,
			TableName:  w.TableName,
			TableColor: w.TableColor,
		}
	default:
		kind, err := domain.ParseKind(w.Type)
		if err != nil || !kind.IsLevel() {
			return fmt.Errorf("tree node with unexpected type %q", w.Type)
		}
		e := &Entity{
			ID:        w.ID,
			Code:      w.Code,
			Name:      w.Name,
			Kind:      kind,
			FolderID:  w.FolderID,
			Color:     w.Color,
			ViewType:  w.ViewType,
			SortKey:   w.SortKey,
			CreatedAt: w.CreatedAt,
		}
		switch kind {
		case domain.KindCompany:
			e.ParentID = w.ShareholderID
		case domain.KindProject:
			e.ParentID = w.CompanyID
		case domain.KindTable:
			e.ParentID = w.ProjectID
		case domain.KindView:
			e.ParentID = w.TableID
		}
		n.Entity = e
	}

	return nil
}
