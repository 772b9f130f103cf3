// Package dom applies translations to HTML documents on the server.
//
// It implements the markup contract of the translation helper:
//
//	<p data-i18n="nav.home"></p>
//	<input data-i18n-attr="placeholder:form.placeholder">
//
// Elements marked with data-i18n get their content replaced by the translation,
// parsed as HTML. Elements marked with data-i18n-attr get one attribute set.
// ApplyPageMeta and SetDocumentLang update the document head and root element.
package dom
