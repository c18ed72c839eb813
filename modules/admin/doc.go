// Package admin exposes tenant administration over HTTP: provisioning,
// listing, lifecycle changes, and deletion. It is the administrative
// trigger in front of the provisioner and must be mounted behind operator
// authentication.
package admin
