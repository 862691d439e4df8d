// Package registry groups references to JSON values under names.
//
// An Info is one named group; an InfoList is an ordered collection of
// Infos that can be looked up by name or by position. Both hold borrowed
// references: releasing them never changes the values they point to.
//
// All methods accept a nil receiver and behave as on an empty collection.
package registry

import "github.com/mcncl/jsonshape/internal/models"

// Info is a named, ordered group of JSON values. Duplicates are allowed.
type Info struct {
	name     string
	elements []*models.Value
}

// NewInfo creates an empty group. It returns nil when name is empty.
func NewInfo(name string) *Info {
	if name == "" {
		return nil
	}
	return &Info{name: name}
}

// AddElement appends v to the group. Nil groups and nil values are ignored.
func (i *Info) AddElement(v *models.Value) {
	if i == nil || v == nil {
		return
	}
	i.elements = append(i.elements, v)
}

// GetCount returns the number of values in the group.
func (i *Info) GetCount() int {
	if i == nil {
		return 0
	}
	return len(i.elements)
}

// GetName returns the group name, or "" for a nil group.
func (i *Info) GetName() string {
	if i == nil {
		return ""
	}
	return i.name
}

// GetElementByIndex returns the element at index, or nil when index is
// outside [0, GetCount()).
func (i *Info) GetElementByIndex(index int) *models.Value {
	if i == nil || index < 0 || index >= len(i.elements) {
		return nil
	}
	return i.elements[index]
}

// Release drops the name and every reference held by the group.
func (i *Info) Release() {
	if i == nil {
		return
	}
	clear(i.elements)
	i.elements = nil
	i.name = ""
}

// InfoList is an ordered collection of groups. It owns the groups added to it.
type InfoList struct {
	infos []*Info
}

// NewInfoList creates an empty list.
func NewInfoList() *InfoList {
	return &InfoList{}
}

// AddInfoElement appends info to the list. Nil lists and nil groups are ignored.
// Names are not required to be unique.
func (l *InfoList) AddInfoElement(info *Info) {
	if l == nil || info == nil {
		return
	}
	l.infos = append(l.infos, info)
}

// FindInfoElementByName returns the first group whose name equals name.
func (l *InfoList) FindInfoElementByName(name string) *Info {
	if l == nil || name == "" {
		return nil
	}
	for _, info := range l.infos {
		if info.GetName() == name {
			return info
		}
	}
	return nil
}

// FindInfoElementByIndex returns the group at index, or nil when index is
// outside [0, GetCount()).
func (l *InfoList) FindInfoElementByIndex(index int) *Info {
	if l == nil || index < 0 || index >= len(l.infos) {
		return nil
	}
	return l.infos[index]
}

// InfoElementExistsByName reports whether a group named name is in the list.
func (l *InfoList) InfoElementExistsByName(name string) bool {
	return l.FindInfoElementByName(name) != nil
}

// InfoElementExistsByIndex reports whether index addresses a group.
func (l *InfoList) InfoElementExistsByIndex(index int) bool {
	return l.FindInfoElementByIndex(index) != nil
}

// GetCount returns the number of groups.
func (l *InfoList) GetCount() int {
	if l == nil {
		return 0
	}
	return len(l.infos)
}

// Group adds v to the group called name, creating the group on first use.
// It returns the group, or nil when name is empty.
func (l *InfoList) Group(name string, v *models.Value) *Info {
	info := l.FindInfoElementByName(name)
	if info == nil {
		info = NewInfo(name)
		l.AddInfoElement(info)
	}
	info.AddElement(v)
	return info
}

// Release releases every group and empties the list.
func (l *InfoList) Release() {
	if l == nil {
		return
	}
	for _, info := range l.infos {
		info.Release()
	}
	clear(l.infos)
	l.infos = nil
}
