// Package storage provides data structures and iterators for efficient storage and retrieval
// of posting lists and term frequencies using Roaring Bitmaps. This package enables efficient
// queries and data traversal in search engines or inverted index implementations.
package storage

import (
	"fmt"

	"roaring/roaring"
)

// BitmapIterator defines an interface for iterating over document IDs stored in a bitmap.
type BitmapIterator interface {
	// Next advances the iterator to the next document ID. It returns true if there is a next document ID,
	// false otherwise. Any error encountered during iteration is returned.
	Next() (bool, error)

	// DocID returns the current document ID pointed to by the iterator. If no valid document is available,
	// it returns an error.
	DocID() (uint32, error)
}

// RoaringBitmapIterator implements BitmapIterator over a roaring.Bitmap's
// members, in ascending document ID order.
type RoaringBitmapIterator struct {
	ids          []uint32
	currentIndex int
}

// NewRoaringBitmapIterator creates a new iterator over bitmap's members.
func NewRoaringBitmapIterator(bitmap *roaring.Bitmap) *RoaringBitmapIterator {
	return &RoaringBitmapIterator{
		ids:          bitmap.ToSlice(),
		currentIndex: -1,
	}
}

// Next advances to the next document ID in the bitmap.
func (it *RoaringBitmapIterator) Next() (bool, error) {
	if it.currentIndex+1 >= len(it.ids) {
		return false, nil
	}
	it.currentIndex++
	return true, nil
}

// DocID retrieves the current document ID.
func (it *RoaringBitmapIterator) DocID() (uint32, error) {
	if it.currentIndex < 0 || it.currentIndex >= len(it.ids) {
		return 0, fmt.Errorf("invalid position while iterating bitmap")
	}
	return it.ids[it.currentIndex], nil
}

// PostingListIterator defines an interface for iterating over posting lists.
// It provides methods to traverse document IDs and retrieve term frequencies.
type PostingListIterator interface {
	// Next advances the iterator to the next document ID in the posting list.
	Next() (bool, error)

	// DocID returns the current document ID in the posting list.
	DocID() (uint32, error)

	// Term returns the term associated with this iterator.
	Term() string

	// TermFrequency returns the term frequency associated with the current document ID.
	TermFrequency() (float32, error)

	// CurrentBlock returns the current block being processed by the iterator.
	CurrentBlock() *Block
}

// TermIterator implements PostingListIterator for traversing term posting lists in blocks.
type TermIterator struct {
	blocks        []*Block       // Posting list blocks for the term
	currentBlock  int            // Index of the current block
	blockIterator BitmapIterator // Iterator for the current block's bitmap
	currentDocID  uint32         // Current document ID
	term          string         // Term associated with this iterator
}

// NewTermIterator creates a new TermIterator for the given blocks.
func NewTermIterator(blocks []*Block, term string) PostingListIterator {
	if len(blocks) == 0 {
		return &EmptyIterator{}
	}

	firstBlock := blocks[0]
	if firstBlock == nil || firstBlock.Bitmap == nil {
		return &EmptyIterator{}
	}

	return &TermIterator{
		blocks:        blocks,
		currentBlock:  0,
		blockIterator: NewRoaringBitmapIterator(firstBlock.Bitmap),
		term:          term,
	}
}

// Next advances to the next document in the posting list.
func (it *TermIterator) Next() (bool, error) {
	for {
		if it.blockIterator != nil {
			hasNext, err := it.blockIterator.Next()
			if err != nil {
				return false, err
			}
			if hasNext {
				docID, err := it.blockIterator.DocID()
				if err != nil {
					return false, err
				}
				it.currentDocID = docID
				return true, nil
			}
		}

		// Move to the next block
		it.currentBlock++
		if it.currentBlock >= len(it.blocks) {
			return false, nil // No more blocks
		}
		it.blockIterator = NewRoaringBitmapIterator(it.blocks[it.currentBlock].Bitmap)
	}
}

// DocID retrieves the current document ID.
func (it *TermIterator) DocID() (uint32, error) {
	return it.currentDocID, nil
}

// Term retrieves the term associated with the iterator.
func (it *TermIterator) Term() string {
	return it.term
}

// TermFrequency retrieves the term frequency for the current document.
func (it *TermIterator) TermFrequency() (float32, error) {
	// Validate currentBlock is within range
	if it.currentBlock < 0 || it.currentBlock >= len(it.blocks) {
		return 0, fmt.Errorf("invalid block index %d while retrieving term frequency", it.currentBlock)
	}

	block := it.blocks[it.currentBlock]

	// Rank is 1-based (count of members <= docID); term frequencies are
	// recorded in insertion order, so this lookup is correct only when a
	// block's documents were added in ascending docID order.
	rank := block.Bitmap.Rank(it.currentDocID)

	if rank <= 0 || rank > len(block.TermFrequencies) {
		return 0, fmt.Errorf("rank %d out of bounds for term frequencies (len=%d)", rank, len(block.TermFrequencies))
	}

	return block.TermFrequencies[rank-1], nil
}

// CurrentBlock returns the current block being processed by the iterator.
func (it *TermIterator) CurrentBlock() *Block {
	if it.currentBlock >= 0 && it.currentBlock < len(it.blocks) {
		return it.blocks[it.currentBlock]
	}
	return nil
}

// TermIterator returns a PostingListIterator for the specified term.
func (s *Segment) TermIterator(term string) (PostingListIterator, error) {
	termMetadata, exists := s.Terms[term]
	if !exists {
		return &EmptyIterator{}, nil
	}
	return NewTermIterator(termMetadata.Blocks, term), nil
}

// TermIterators returns PostingListIterators for a list of terms.
func (s *Segment) TermIterators(terms []string) ([]PostingListIterator, error) {
	var termIterators []PostingListIterator
	for _, term := range terms {
		termIterator, err := s.TermIterator(term)
		if err != nil {
			return nil, err
		}
		termIterators = append(termIterators, termIterator)
	}

	return termIterators, nil
}

// EmptyIterator provides a no-op implementation of PostingListIterator.
type EmptyIterator struct{}

// Next always returns false, indicating there are no elements to iterate over.
func (it *EmptyIterator) Next() (bool, error) {
	return false, nil
}

// DocID returns an error because there are no valid elements in the iterator.
func (it *EmptyIterator) DocID() (uint32, error) {
	return 0, fmt.Errorf("no valid DocID in empty iterator")
}

// Term retrieves the term for an empty iterator (always empty string).
func (it *EmptyIterator) Term() string {
	return ""
}

// TermFrequency returns an error because there are no valid elements in the iterator.
func (it *EmptyIterator) TermFrequency() (float32, error) {
	return 0, fmt.Errorf("no valid TermFrequency in empty iterator")
}

// CurrentBlock returns nil because there are no blocks in an empty iterator.
func (it *EmptyIterator) CurrentBlock() *Block {
	return nil
}
