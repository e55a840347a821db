/*
Package utils contains decorators shared by all handlers: logging, panic
recovery and savepoints.
*/
package utils
