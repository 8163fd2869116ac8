package domain

// Category представляет категорию каталога. Дерево хранится плоско:
// каждая категория несёт только ParentID, без встроенных указателей на
// детей. Списки детей собираются на чтении по индексу id → узел.
type Category struct {
	ID   string
	Name string
	// ParentID — ссылка на родительскую категорию, если есть.
	// Инвариант ParentID != ID проверяется при обновлении; более длинные
	// циклы (A→B→A) представимы и не отлавливаются.
	ParentID     *string
	ImageURL     *string
	DisplayOrder int32
}

// CategoryNode — узел дерева категорий, собранного на чтении.
type CategoryNode struct {
	Category
	Children []CategoryNode
}

// BuildCategoryTree собирает дерево из плоского списка категорий.
// Категории с ParentID, отсутствующим в списке, попадают в корень
// (так проявляются осиротевшие поддеревья после удаления предка).
func BuildCategoryTree(categories []Category) []CategoryNode {
	index := make(map[string][]Category, len(categories))
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}
	var roots []Category
	for _, c := range categories {
		if c.ParentID != nil && known[*c.ParentID] {
			index[*c.ParentID] = append(index[*c.ParentID], c)
			continue
		}
		roots = append(roots, c)
	}

	var build func(c Category) CategoryNode
	build = func(c Category) CategoryNode {
		node := CategoryNode{Category: c}
		for _, child := range index[c.ID] {
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	nodes := make([]CategoryNode, 0, len(roots))
	for _, root := range roots {
		nodes = append(nodes, build(root))
	}
	return nodes
}
