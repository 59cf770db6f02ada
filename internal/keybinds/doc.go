/*
Package keybinds provides customizable keyboard binding management.

Bindings live in contexts (list, detail, editor, profile, ...). A key that
is unbound in a specific context falls back to its parent context
(detail -> modal, activity -> viewer -> modal) and finally to global.

Users override the defaults with ~/.apiconsole/keybinds.json, which maps
actions to comma-separated keys per context:

	{
	  "version": "1.0",
	  "list": {
	    "delete": "x,delete",
	    "create": "n"
	  }
	}

Listing an action replaces its default keys in that context. ctrl+c is
reserved for force quit.

Multi-key sequences such as "gg" are registered with RegisterSequence and
resolved with MatchMultiKey.
*/
package keybinds
