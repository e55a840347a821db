/*
Package custodytest provides mocks and helpers used to test custody
extensions and the application.
*/
package custodytest
