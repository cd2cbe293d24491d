package middleware

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/linkshrink/linkshrink/internal/authn"
)

// Identity resolves the caller from request cookies and places the session
// on the context. When the resolver mints a fresh anonymous token, the
// matching Set-Cookie header goes out with the response.
func Identity(_ huma.API, resolver *authn.Resolver) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		session, setCookie := resolver.Resolve(ctx.Context(), huma.ReadCookies(ctx))
		if setCookie != nil {
			ctx.AppendHeader("Set-Cookie", setCookie.String())
		}

		next(huma.WithContext(ctx, authn.ContextWithSession(ctx.Context(), session)))
	}
}
