// Package main provides the entry point for the Admidio authentication
// bridge. It runs a web server using the Fiber framework that verifies
// login credentials against an external Admidio membership database,
// provisions matching users in the host identity store via gorm and
// reconciles their group memberships on every successful login.
package main
