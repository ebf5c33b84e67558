package aglio

import "fmt"

// Code identifies a class of encode/decode failure. Use errors.Is against
// the exported sentinel Code values below, or switch on
// (*EncodeError).Code / (*DecodeError).Code.
type Code int

const (
	// NotDescriptive: an interface-typed value was to be encoded or decoded;
	// the wire carries no type information, so only a concrete type can
	// drive the codec.
	NotDescriptive Code = iota
	// TooLong: a length, element count, or variant index exceeds the range
	// its configured wire type can represent.
	TooLong
	// InvalidData: a discriminator byte (bool, option tag, variant index) or
	// the frame's body_length field is inconsistent with the input.
	InvalidData
	// ChecksumError: the frame's CRC trailer did not match the computed CRC.
	ChecksumError
	// InvalidSize: a decoded length exceeds what this platform can address.
	InvalidSize
	// InvalidPacketStart: the sentinel is missing or does not match.
	InvalidPacketStart
	// InvalidUTF8: a str/char payload was not valid UTF-8.
	InvalidUTF8
	// InvalidLength: fewer bytes remain than the current operation needs.
	InvalidLength
	// Custom: an unsupported Go type, or an invalid decode destination or
	// VariantSpec.New result. An error returned by a Marshaler/Unmarshaler
	// is passed through as returned and is not wrapped in Custom.
	Custom
)

func (c Code) String() string {
	switch c {
	case NotDescriptive:
		return "NotDescriptive"
	case TooLong:
		return "TooLong"
	case InvalidData:
		return "InvalidData"
	case ChecksumError:
		return "ChecksumError"
	case InvalidSize:
		return "InvalidSize"
	case InvalidPacketStart:
		return "InvalidPacketStart"
	case InvalidUTF8:
		return "InvalidUTF8"
	case InvalidLength:
		return "InvalidLength"
	case Custom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// Error lets a bare Code value (e.g. aglio.TooLong) be passed directly as
// an errors.Is target without constructing a full *EncodeError/*DecodeError.
func (c Code) Error() string { return "aglio: " + c.String() }

func (c Code) code() Code { return c }

// codeSentinel lets *EncodeError/*DecodeError.Is match against a bare Code.
type codeSentinel interface {
	code() Code
}

// EncodeError is returned by Encode/EncodeWith and by Encoder methods.
type EncodeError struct {
	Code   Code
	Path   string // best-effort field/container path, e.g. "Order.Items[2]"
	Detail string
	Cause  error
}

func (e *EncodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("aglio: encode %s: %s: %s", e.Path, e.Code, e.Detail)
	}
	return fmt.Sprintf("aglio: encode: %s: %s", e.Code, e.Detail)
}

func (e *EncodeError) Unwrap() error { return e.Cause }

func (e *EncodeError) Is(target error) bool {
	code, ok := target.(codeSentinel)
	return ok && code.code() == e.Code
}

// DecodeError is returned by Decode/DecodeWith and by Decoder methods.
type DecodeError struct {
	Code   Code
	Path   string
	Detail string
	Cause  error
}

func (e *DecodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("aglio: decode %s: %s: %s", e.Path, e.Code, e.Detail)
	}
	return fmt.Sprintf("aglio: decode: %s: %s", e.Code, e.Detail)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

func (e *DecodeError) Is(target error) bool {
	code, ok := target.(codeSentinel)
	return ok && code.code() == e.Code
}

func encErr(code Code, path, detail string, cause error) *EncodeError {
	return &EncodeError{Code: code, Path: path, Detail: detail, Cause: cause}
}

func decErr(code Code, path, detail string, cause error) *DecodeError {
	return &DecodeError{Code: code, Path: path, Detail: detail, Cause: cause}
}
