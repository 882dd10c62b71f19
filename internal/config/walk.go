package config

import "fmt"

// NavVisitor is called for every nav entry, dropdown items included, in declaration order.
// loc is the entry's location, e.g. "themeConfig.nav[1].items[0]".
type NavVisitor func(loc string, item *NavItem) error

// SidebarVisitor is called for every sidebar entry, group children included, depth first.
type SidebarVisitor func(loc string, item *SidebarItem) error

// WalkNav visits nav entries depth first. A visitor error stops the walk.
func WalkNav(items []NavItem, visit NavVisitor) error {
	return walkNav("themeConfig.nav", items, visit)
}

func walkNav(prefix string, items []NavItem, visit NavVisitor) error {
	for i := range items {
		loc := fmt.Sprintf("%s[%d]", prefix, i)
		if err := visit(loc, &items[i]); err != nil {
			return err
		}
		if err := walkNav(loc+".items", items[i].Items, visit); err != nil {
			return err
		}
	}
	return nil
}

// WalkSidebar visits sidebar entries depth first. A visitor error stops the walk.
func WalkSidebar(items []SidebarItem, visit SidebarVisitor) error {
	return walkSidebar("themeConfig.sidebar", items, visit)
}

func walkSidebar(prefix string, items []SidebarItem, visit SidebarVisitor) error {
	for i := range items {
		loc := fmt.Sprintf("%s[%d]", prefix, i)
		if err := visit(loc, &items[i]); err != nil {
			return err
		}
		if err := walkSidebar(loc+".children", items[i].Children, visit); err != nil {
			return err
		}
	}
	return nil
}
