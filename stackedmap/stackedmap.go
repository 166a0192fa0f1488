// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stackedmap keeps revisions of key/value changes so a whole level can
// be dropped at once.
package stackedmap

// StackedMap maintains maps in a stack.
// Each map inherits key/value of map that is at lower level.
// It acts as a map with save-restore/snapshot-revert manner.
type StackedMap struct {
	src        MapGetter
	mapStack   stack
	keyRevisionMap
	journal []*JournalEntry
}

// MapGetter defines getter method of map.
type MapGetter func(key interface{}) (value interface{}, exist bool)

// JournalEntry a single put.
type JournalEntry struct {
	Key   interface{}
	Value interface{}
}

type keyRevisionMap map[interface{}]*stack

// New create an instance of StackedMap.
// src acts as source of data.
func New(src MapGetter) *StackedMap {
	sm := &StackedMap{
		src:            src,
		keyRevisionMap: make(keyRevisionMap),
	}
	sm.mapStack.push(level{make(map[interface{}]interface{}), 0})
	return sm
}

type level struct {
	kvs        map[interface{}]interface{}
	journalLen int
}

// Depth returns depth of stack.
func (sm *StackedMap) Depth() int {
	return len(sm.mapStack)
}

// Push pushes a new map on stack.
// It returns stack depth before push.
func (sm *StackedMap) Push() int {
	sm.mapStack.push(level{make(map[interface{}]interface{}), len(sm.journal)})
	return len(sm.mapStack) - 1
}

// Pop pops a map from stack.
func (sm *StackedMap) Pop() {
	if len(sm.mapStack) <= 1 {
		return
	}
	top := sm.mapStack.pop().(level)
	for key := range top.kvs {
		revs := sm.keyRevisionMap[key]
		revs.pop()
		if len(*revs) == 0 {
			delete(sm.keyRevisionMap, key)
		}
	}
	sm.journal = sm.journal[:top.journalLen]
}

// PopTo pops maps until stack depth reaches depth.
// The base map is never popped.
func (sm *StackedMap) PopTo(depth int) {
	if depth < 1 {
		depth = 1
	}
	for len(sm.mapStack) > depth {
		sm.Pop()
	}
}

// Get gets value for given key.
// The second return value indicates whether the given key is found.
func (sm *StackedMap) Get(key interface{}) (interface{}, bool) {
	if revs, ok := sm.keyRevisionMap[key]; ok {
		lvl := sm.mapStack[revs.top().(int)].(level)
		v := lvl.kvs[key]
		return v, true
	}
	if sm.src != nil {
		return sm.src(key)
	}
	return nil, false
}

// Put puts key value into map at stack top.
func (sm *StackedMap) Put(key, value interface{}) {
	rev := len(sm.mapStack) - 1
	sm.mapStack.top().(level).kvs[key] = value
	if revs, ok := sm.keyRevisionMap[key]; ok {
		if revs.top().(int) != rev {
			revs.push(rev)
		}
	} else {
		sm.keyRevisionMap[key] = &stack{rev}
	}
	sm.journal = append(sm.journal, &JournalEntry{Key: key, Value: value})
}

// Journal traverses journal entries of all Put operations.
// The traverse will abort if the callback func returns false.
func (sm *StackedMap) Journal(cb func(key, value interface{}) bool) {
	for _, entry := range sm.journal {
		if !cb(entry.Key, entry.Value) {
			return
		}
	}
}

type stack []interface{}

func (s *stack) push(v interface{}) {
	*s = append(*s, v)
}

func (s *stack) pop() interface{} {
	top := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return top
}

func (s stack) top() interface{} {
	return s[len(s)-1]
}
