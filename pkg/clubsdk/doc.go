// Package clubsdk holds the wire types of the clubhouse HTTP API and the
// error envelope every endpoint answers with on failure.
package clubsdk
