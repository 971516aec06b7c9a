// Package errs contains sentinel errors shared by services and handlers for stable HTTP mapping.
package errs

import "errors"

var (
	// ErrUnauthenticated indicates a business operation was invoked without a resolved identity.
	ErrUnauthenticated = errors.New("用户未登录")

	// ErrInvalidArgument indicates malformed or out-of-range input (bad date, negative amount, empty list).
	ErrInvalidArgument = errors.New("参数错误")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("记录不存在")

	// ErrTokenInvalid indicates a token whose signature does not verify or that is malformed.
	ErrTokenInvalid = errors.New("token无效")

	// ErrTokenExpired indicates a well-formed token past its embedded expiry.
	ErrTokenExpired = errors.New("token已过期")

	// ErrUpstream indicates a store or cache failure that must propagate to the caller.
	ErrUpstream = errors.New("服务暂时不可用")
)
