// Package x11 provides the X11 backend: window listing and actions through
// wmctrl, root window properties through xprop or a direct xgb connection.
// Importing it for side effects registers platform.NewProviderFunc.
package x11
