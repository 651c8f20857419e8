// Package plainsight implements "reverse Huffman" linguistic steganography.
// A bit string is hidden inside cover text by repeatedly building a Huffman
// tree from the n-gram statistics of a source corpus, conditioned on the
// last n-1 characters written so far, and walking that tree with the
// message bits to pick the next character.  Decoding replays the same model
// over the cover text and reads the tree paths back out.
//
// This is not encryption.  Cover text produced from a public corpus can be
// decoded by anybody holding the same frequency table.
//
// References:
//
//     Peter Wayner, _Disappearing Cryptography_, 3rd Edition, chapter 6
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package plainsight
