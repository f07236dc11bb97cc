// Package context contains the application context types.
//
// It only exists to avoid a circular import between the app and cli packages;
// otherwise these types would live in the app package.
package context
