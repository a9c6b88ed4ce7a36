// Package upload publishes generated reports to remote storage.
package upload
