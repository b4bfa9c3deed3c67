package bloom

/*

# Bloom filter primitives

This package provides a fixed width Bloom filter for fixed width items
(typically 32 byte cryptographic hashes) together with the pieces it is made
of. It follows the go-merklelog style:

- small, composable types
- an explicit byte layout
- sentinel errors for every recoverable condition
- panics only for contract violations on raw bit indices

## What Bloom filters are (and are not)

Bloom filters provide a *probabilistic prefilter*:

- If the filter says "definitely not present", then the element was never
  inserted.
- If the filter says "maybe present", then the element may or may not have
  been inserted (false positives are possible).

There is no deletion. Once a bit is set it stays set for the lifetime of the
filter; a new round gets a new filter.

## Components

	BitStore   mBits bits, set/test, OR merge, LSB0 bytes
	Family     k stateless hash functions item -> [0, mBits)
	Filter     BitStore + Family: Insert, MayContain, Merge, Bytes/Decode

## Hash family

A Family partially applies one seeded mixing primitive (a MixFunc) over seed
indices 0..k-1. The primitive seed for index i over items of width w is

	i*0xfba4c795 + w

so every function reads the same item bytes and produces a distinct output
stream. Three primitives are provided: MurmurHash3 x64 (the default),
SipHash-2-4 and domain separated SHA-256. Reduction to [0, mBits) masks the
low bits when mBits is a power of two and otherwise takes the high word of a
64x32 multiply.

Filters only merge when their Params (family name, mBits, k, width) are
identical.

## Wire form

The serialized filter is exactly mBits/8 bytes and carries no header. Bit i
lives in byte i/8 at position i%8, least significant bit first:

	byte:   0                1               ...
	bit:    7 6 5 4 3 2 1 0  15 ... 8

Decoding rejects any buffer whose length is not mBits/8 with ErrBadFormat.

## False positive rate

After n distinct insertions into m bits with k functions the false positive
rate approaches

	(1 - e^(-k*n/m))^k

See FalsePositiveRate and OptimalK.

*/
