package all

import (
	_ "github.com/bornholm/masthead/pkg/kv/cookie"
	_ "github.com/bornholm/masthead/pkg/kv/memory"
	_ "github.com/bornholm/masthead/pkg/kv/sqlite"
)
