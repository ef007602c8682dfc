// Package storage transfers exported tables to and from S3-compatible
// object storage. MinIO is the concrete backend; Push retries transient
// upload failures with truncated exponential backoff before giving up.
package storage
