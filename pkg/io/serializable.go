package io

// Serializable defines the binary encoding/decoding interface. Errors are
// returned through the BinReader/BinWriter objects. Implementations must be
// self-delimiting: DecodeBinary consumes exactly the bytes EncodeBinary
// produced.
type Serializable interface {
	DecodeBinary(*BinReader)
	EncodeBinary(*BinWriter)
}

type encodable interface {
	EncodeBinary(*BinWriter)
}
