//go:build darwin

package platform

/*
#cgo LDFLAGS: -framework CoreFoundation -framework CoreServices
#include <stdlib.h>
#include <CoreFoundation/CoreFoundation.h>
#include <CoreServices/CoreServices.h>
*/
import "C"

import (
	"unsafe"

	"defapp/internal/errors"
)

// cfString bridges a Go string to a CFString. The caller owns the returned
// reference and must release it on every exit path.
func cfString(s string) C.CFStringRef {
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	return C.CFStringCreateWithCString(C.kCFAllocatorDefault, cs, C.kCFStringEncodingUTF8)
}

func releaseCF(ref C.CFTypeRef) {
	if ref != nil {
		C.CFRelease(ref)
	}
}

// setDefaultRoleHandler registers bundleID as the all-roles handler for a
// content type via LaunchServices.
func setDefaultRoleHandler(contentType, bundleID string) error {
	contentRef := cfString(contentType)
	if contentRef == nil {
		return errors.Newf(errors.CommandFailed, "cannot bridge content type %q", contentType)
	}
	defer releaseCF(C.CFTypeRef(unsafe.Pointer(contentRef)))

	bundleRef := cfString(bundleID)
	if bundleRef == nil {
		return errors.Newf(errors.CommandFailed, "cannot bridge bundle id %q", bundleID)
	}
	defer releaseCF(C.CFTypeRef(unsafe.Pointer(bundleRef)))

	status := C.LSSetDefaultRoleHandlerForContentType(contentRef, C.kLSRolesAll, bundleRef)
	if status != 0 {
		return errors.Newf(errors.CommandFailed,
			"LSSetDefaultRoleHandlerForContentType(%s, %s) returned %d", contentType, bundleID, int(status))
	}
	return nil
}

// copyDefaultRoleHandler asks LaunchServices for the all-roles handler of a
// content type.
func copyDefaultRoleHandler(contentType string) (string, bool) {
	contentRef := cfString(contentType)
	if contentRef == nil {
		return "", false
	}
	defer releaseCF(C.CFTypeRef(unsafe.Pointer(contentRef)))

	handlerRef := C.LSCopyDefaultRoleHandlerForContentType(contentRef, C.kLSRolesAll)
	if handlerRef == nil {
		return "", false
	}
	defer releaseCF(C.CFTypeRef(unsafe.Pointer(handlerRef)))

	return cfStringToGo(handlerRef)
}

func cfStringToGo(ref C.CFStringRef) (string, bool) {
	buf := make([]C.char, 1024)
	if C.CFStringGetCString(ref, &buf[0], C.CFIndex(len(buf)), C.kCFStringEncodingUTF8) == 0 {
		return "", false
	}
	return C.GoString(&buf[0]), true
}
