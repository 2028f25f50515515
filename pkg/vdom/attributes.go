package vdom

import "strings"

// attr creates an attribute with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Attribute creates an arbitrary attribute.
func Attribute(key string, value any) Attr { return attr(key, value) }

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Data sets a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Common attributes.

func TitleAttr(title string) Attr { return attr("title", title) }
func Href(url string) Attr        { return attr("href", url) }
func Src(url string) Attr         { return attr("src", url) }
func Alt(text string) Attr        { return attr("alt", text) }
func Name(name string) Attr       { return attr("name", name) }
func Value(value string) Attr     { return attr("value", value) }
func Type(t string) Attr          { return attr("type", t) }
func Charset(cs string) Attr      { return attr("charset", cs) }

// Disabled sets the disabled boolean attribute.
func Disabled() Attr { return attr("disabled", true) }

// Key sets the reconciliation key.
func Key(key string) Attr { return attr("key", key) }
