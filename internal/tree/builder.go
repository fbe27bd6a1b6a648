// Package tree assembles flat folder and leaf rows into the nested ordered
// tree the panels render. Build is pure: no I/O, and identical inputs always
// produce the identical tree.
package tree

import (
	"sort"

	"strata/internal/domain/models"
)

// rootKey stands in for the nil bucket in grouping maps.
const rootKey = ""

// Build merges one scope's folders and leaf nodes into an ordered forest.
// Folders nest recursively through their parent_id; leaves attach through
// their folder_id. Absent, null and empty references all mean the root bucket.
// Every sibling list is sorted by sort key ascending; the sort is stable, so
// rows tying on the key keep folders ahead of leaves.
func Build(folders []models.Folder, leaves []*models.TreeNode) []*models.TreeNode {
	// Arena-style grouping: flat buckets keyed by normalized reference, nested
	// view materialized on the way out.
	folderBuckets := make(map[string][]*models.Folder)
	for i := range folders {
		key := bucketKey(models.NormalizeRef(folders[i].ParentID))
		folderBuckets[key] = append(folderBuckets[key], &folders[i])
	}

	leafBuckets := make(map[string][]*models.TreeNode)
	for _, leaf := range leaves {
		key := bucketKey(leaf.BucketKey())
		leafBuckets[key] = append(leafBuckets[key], leaf)
	}

	return buildLevel(rootKey, folderBuckets, leafBuckets)
}

func buildLevel(key string, folderBuckets map[string][]*models.Folder, leafBuckets map[string][]*models.TreeNode) []*models.TreeNode {
	siblings := make([]*models.TreeNode, 0, len(folderBuckets[key])+len(leafBuckets[key]))

	for _, folder := range folderBuckets[key] {
		node := models.FolderNode(folder)
		node.Children = buildLevel(folder.ID, folderBuckets, leafBuckets)
		siblings = append(siblings, node)
	}
	siblings = append(siblings, leafBuckets[key]...)

	sort.SliceStable(siblings, func(i, j int) bool {
		return siblings[i].SortKey() < siblings[j].SortKey()
	})

	return siblings
}

func bucketKey(ref *string) string {
	if ref == nil {
		return rootKey
	}
	return *ref
}
