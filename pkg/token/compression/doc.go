// Package compression implements the payload codecs named by the JWT "zip" header:
// DEF (zlib-framed deflate) and GZIP.
package compression
