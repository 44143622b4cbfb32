/*
 * MIT License
 *
 * Copyright (c) 2026 Orchd Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package codec

import "errors"

// Predefined errors for the wire codec failure conditions.
//
// These provide well-known failure modes and can be classified with
// errors.Is.
var (
	// ErrTypeNotSerializable indicates that a value reachable from the
	// encoded object graph has a type outside the permitted registry.
	// Encoding fails without producing partial output.
	ErrTypeNotSerializable = errors.New("type is not in the serializable registry")

	// ErrUnknownTypeTag indicates that a document carries a type
	// discriminator that is absent from the registry. Decoding fails
	// closed: it never materializes a value of an unregistered type.
	ErrUnknownTypeTag = errors.New("unknown type tag")

	// ErrMalformedDocument indicates that the document is not valid wire
	// format: bad JSON, a missing discriminator, or a shape that does not
	// match the target record.
	ErrMalformedDocument = errors.New("malformed wire document")
)
