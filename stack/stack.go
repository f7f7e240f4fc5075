// Package stack provides a non-thread-safe bounded stack of strings.
package stack

// Stack is a non-thread-safe LIFO of strings that never holds more than its capacity.
// The zero value is a stack of capacity 0 and rejects every push.
type Stack struct {
	top      *node
	capacity int
	size     int
}

// node exclusively owns the chain below it.
type node struct {
	value string
	next  *node
}

// New creates an empty stack. capacity is kept as given; a capacity of zero or less
// gives a stack that is full from the start.
func New(capacity int) *Stack {
	return &Stack{capacity: capacity}
}

// Size returns the number of elements in the stack.
func (st *Stack) Size() int {
	return st.size
}

// Cap returns the capacity the stack was created with.
func (st *Stack) Cap() int {
	return st.capacity
}

// Reset drops every element. The capacity is unchanged.
func (st *Stack) Reset() {
	st.top = nil
	st.size = 0
}

// TryPush pushes value onto the stack and reports whether it was accepted.
// A full stack is left unchanged.
func (st *Stack) TryPush(value string) bool {
	if st.IsFull() {
		return false
	}
	st.top = &node{
		value: value,
		next:  st.top,
	}
	st.size++
	return true
}

// TryPop removes the top element and returns it.
// On an empty stack it returns "" and false.
func (st *Stack) TryPop() (string, bool) {
	if st.top == nil {
		return "", false
	}
	topNode := st.top
	st.top = topNode.next
	topNode.next = nil
	st.size--
	return topNode.value, true
}

// Peek returns the element depth positions below the top, depth 0 being the top.
// It returns false when the stack holds no element at that depth.
// A negative depth is treated as 0.
func (st *Stack) Peek(depth int) (string, bool) {
	cur := st.top
	for i := 0; i < depth; i++ {
		if cur == nil {
			return "", false
		}
		cur = cur.next
	}
	if cur == nil {
		return "", false
	}
	return cur.value, true
}

// IsEmpty reports whether the stack has no elements.
func (st *Stack) IsEmpty() bool {
	return st.top == nil
}

// IsFull reports whether the size has reached the capacity.
// The comparison is strict equality; a negative capacity is never reachable, so such
// a stack is always full.
func (st *Stack) IsFull() bool {
	if st.capacity < 0 {
		return true
	}
	return st.size == st.capacity
}

// IsHomogeneous reports whether every element equals the top one.
// An empty stack is homogeneous.
func (st *Stack) IsHomogeneous() bool {
	if st.top == nil {
		return true
	}
	for cur := st.top.next; cur != nil; cur = cur.next {
		if cur.value != st.top.value {
			return false
		}
	}
	return true
}
