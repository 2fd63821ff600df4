package bookmarks

// FindFolders returns deep copies of every folder in forest named name, in
// document order. A matching folder is not searched further, so same-named
// folders nested inside a match are not listed on their own.
func FindFolders(forest []Node, name string) []Node {
	var found []Node
	for _, node := range forest {
		if !node.IsFolder() {
			continue
		}

		if node.Name == name {
			found = append(found, node.Clone())
		} else {
			found = append(found, FindFolders(node.Children, name)...)
		}
	}
	return found
}
