package plainsight

import (
	"bytes"
	"fmt"
	"io"
	"sort"
)

// Node is a node of a Huffman tree: either a *Leaf or an *Internal.
type Node interface {
	nodeWeight() uint64
}

// Leaf is a Huffman tree node that carries a token.
type Leaf struct {
	Token  string
	Weight uint64
}

// Internal is a Huffman tree node with exactly two children.  Its weight is
// the sum of its children's weights.
type Internal struct {
	Left   Node
	Right  Node
	Weight uint64
}

func (leaf *Leaf) nodeWeight() uint64 { return leaf.Weight }

func (in *Internal) nodeWeight() uint64 { return in.Weight }

var (
	_ Node = (*Leaf)(nil)
	_ Node = (*Internal)(nil)
)

// Tree is a Huffman code tree.  The zero Tree is the empty tree, which has
// no root and encodes nothing.  A tree built from a single symbol is a lone
// Leaf whose code is the empty bit string.
//
// Trees are never modified after BuildTree returns them.
type Tree struct {
	root Node
}

// BuildTree constructs the Huffman tree for dist using the classic greedy
// algorithm: every symbol starts as a Leaf weighted by its count, and the two
// lightest nodes are merged until one remains.  The first node popped in
// each round becomes the left child.
//
// The same dist always yields the same tree, which is what lets a decoder
// rebuild the encoder's code independently.
//
func BuildTree(dist Distribution) (Tree, error) {
	numSymbols := len(dist.Strings)
	if numSymbols != len(dist.Counts) {
		return Tree{}, validationf("BuildTree", ErrSizeMismatch, "%d strings, %d counts", numSymbols, len(dist.Counts))
	}
	if numSymbols == 0 {
		return Tree{}, nil
	}

	var q PriorityQueue[Node]
	for i, token := range dist.Strings {
		weight := uint64(dist.Counts[i])
		q.Push(&Leaf{Token: token, Weight: weight}, weight)
	}

	for round := 1; round < numSymbols; round++ {
		left := q.Pop()
		right := q.Pop()
		weight := left.nodeWeight() + right.nodeWeight()
		q.Push(&Internal{Left: left, Right: right, Weight: weight}, weight)
	}

	return Tree{root: q.Pop()}, nil
}

// Root returns the root node, or nil for the empty tree.
func (t Tree) Root() Node {
	return t.root
}

// IsEmpty returns true iff this is the empty tree.
func (t Tree) IsEmpty() bool {
	return t.root == nil
}

// Weight returns the weight of the root, or 0 for the empty tree.
func (t Tree) Weight() uint64 {
	if t.root == nil {
		return 0
	}
	return t.root.nodeWeight()
}

// EncodeToken walks t from the root, consuming one bit per branch ('0' is
// left, '1' is right), and returns the token of the Leaf it reaches along
// with the unconsumed bits.
//
// If the bits run out before a Leaf is reached, the walk continues down the
// left branches as though the missing bits were zeros, and the remainder is
// empty.  Thus every call yields a token, even for the last, incomplete
// chunk of a message.  A single-Leaf tree consumes no bits at all.
//
func EncodeToken(t Tree, bits string) (token string, remaining string, err error) {
	const op = "EncodeToken"
	if t.root == nil {
		return "", "", validationf(op, ErrMalformedTree, "tree is empty")
	}
	if len(bits) == 0 {
		return "", "", validationf(op, ErrEmptyBits, "nothing to encode")
	}

	node := t.root
	for i := 0; i < len(bits); i++ {
		switch x := node.(type) {
		case *Leaf:
			return x.Token, bits[i:], nil
		case *Internal:
			if x.Left == nil || x.Right == nil {
				return "", "", validationf(op, ErrMalformedTree, "internal node is missing a child")
			}
			switch bits[i] {
			case '0':
				node = x.Left
			case '1':
				node = x.Right
			default:
				return "", "", validationf(op, ErrInvalidBit, "got %q at position %d", bits[i], i)
			}
		default:
			return "", "", validationf(op, ErrMalformedTree, "unexpected node %T", node)
		}
	}

	// Out of bits: pad with virtual zeros until we reach a Leaf.
	for {
		switch x := node.(type) {
		case *Leaf:
			return x.Token, "", nil
		case *Internal:
			if x.Left == nil {
				return "", "", validationf(op, ErrMalformedTree, "internal node is missing a child")
			}
			node = x.Left
		default:
			return "", "", validationf(op, ErrMalformedTree, "unexpected node %T", node)
		}
	}
}

// DecodeToken returns the bit path from the root of t to the Leaf holding
// token.  It returns an error wrapping ErrNotFound if there is no such Leaf.
func DecodeToken(t Tree, token string) (string, error) {
	if path, found := t.Lookup(token); found {
		return path, nil
	}
	return "", fmt.Errorf("%w: %q", ErrNotFound, token)
}

// Lookup returns the bit path from the root of t to the Leaf holding token,
// and whether such a Leaf exists.  The search is depth-first and explores
// the right subtree before the left one at every branch.
func (t Tree) Lookup(token string) (path string, found bool) {
	type stackItem struct {
		node Node
		path []byte
	}

	if t.root == nil {
		return "", false
	}

	stack := []stackItem{{node: t.root}}
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch x := top.node.(type) {
		case *Leaf:
			if x.Token == token {
				return string(top.path), true
			}
		case *Internal:
			stack = append(stack,
				stackItem{node: x.Left, path: extendPath(top.path, '0')},
				stackItem{node: x.Right, path: extendPath(top.path, '1')})
		}
	}
	return "", false
}

// Paths returns the code of every token in t.
func (t Tree) Paths() map[string]string {
	out := make(map[string]string)
	var walk func(node Node, path []byte)
	walk = func(node Node, path []byte) {
		switch x := node.(type) {
		case *Leaf:
			out[x.Token] = string(path)
		case *Internal:
			walk(x.Left, extendPath(path, '0'))
			walk(x.Right, extendPath(path, '1'))
		}
	}
	walk(t.root, nil)
	return out
}

// String returns a short human-readable description of the tree.
func (t Tree) String() string {
	return fmt.Sprintf("(Huffman tree with %d symbols, total weight %d)", len(t.Paths()), t.Weight())
}

// Dump writes a programmer-readable debugging dump of the tree to the given
// writer.  Tokens are listed in ascending order.
func (t Tree) Dump(w io.Writer) (int64, error) {
	paths := t.Paths()
	tokens := make([]string, 0, len(paths))
	for token := range paths {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tWeight() = %d\n", t.Weight())
	for _, token := range tokens {
		fmt.Fprintf(&buf, "\tLookup(%q) = %q\n", token, paths[token])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

var _ fmt.Stringer = Tree{}

func extendPath(path []byte, bit byte) []byte {
	out := make([]byte, len(path)+1)
	copy(out, path)
	out[len(path)] = bit
	return out
}
