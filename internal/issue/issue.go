// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

const (
	ManifestNotFoundId Id = iota + 1
	ManifestInvalidId
	CatalogueNotFoundId
	CatalogueInvalidId
	GenerationFailedId
	InstallFailedId
	ConfigLoadFailedId
	OutOfDateId
	PermissionDeniedId
	ManifestWriteFailedId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Renderer interface {
		Render(in string, stylePath string) (string, error)
	}

	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		docLinks []HttpLink
		extLinks []HttpLink // external links that might be useful for the user
	}
)

var (
	render = glamour.Render

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# No top-level package.json found!

shimgen reads the repository's package.json to learn the release version
and to write the override tables back into it.

## Things you can try:
- Run shimgen from the repository root
- Point it at the right directory:
~~~
$ shimgen generate --root /path/to/repo
~~~

- Or set the manifest path in shimgen.cue:
~~~cue
manifest: "package.json"
~~~`,
	}

	manifestInvalidIssue = &Issue{
		id: ManifestInvalidId,
		mdMsg: `
# The top-level package.json is not usable!

The manifest must be a JSON object with non-empty string "name" and
"version" fields. Every generated package copies that version.

## Things you can try:
- Check the file for JSON syntax errors
- Make sure "version" is present, e.g. ` + "`\"version\": \"1.0.0\"`",
	}

	catalogueNotFoundIssue = &Issue{
		id: CatalogueNotFoundId,
		mdMsg: `
# Catalogue file not found!

The catalogue path given on the command line or in shimgen.cue does not exist.

## Things you can try:
- Omit --catalogue to use the built-in catalogue
- Dump the built-in catalogue as a starting point:
~~~
$ shimgen list
~~~`,
	}

	catalogueInvalidIssue = &Issue{
		id: CatalogueInvalidId,
		mdMsg: `
# The catalogue is invalid!

Nothing was written. Every descriptor needs a lowercase name and a
non-empty implementation, names must be unique across the standard,
single_file and manual lists, and engine ranges must parse.

## Example descriptor:
~~~cue
standard: [
	{name: "object-keys", implementation: "Object.keys", static: true},
]
~~~`,
	}

	generationFailedIssue = &Issue{
		id: GenerationFailedId,
		mdMsg: `
# Package generation failed!

A package file could not be written. Generation stopped and the
top-level manifest was not touched.

## Things you can try:
- Check free disk space and permissions on the packages directory
- Re-run with --verbose to see every file outcome`,
	}

	installFailedIssue = &Issue{
		id: InstallFailedId,
		mdMsg: `
# The install step failed!

All packages and the top-level manifest were written, but the package
manager exited with an error. It is not retried.

## Things you can try:
- Run the install command yourself to see its full output:
~~~
$ pnpm i
~~~

- Skip it while iterating:
~~~
$ shimgen generate --skip-install
~~~`,
		extLinks: []HttpLink{"https://pnpm.io/package_json#pnpmoverrides"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

shimgen.cue could not be parsed or does not match the schema.

## Things you can try:
- Print the effective configuration:
~~~
$ shimgen config show
~~~

- Regenerate a valid file from defaults:
~~~
$ shimgen config dump > shimgen.cue
~~~`,
	}

	outOfDateIssue = &Issue{
		id: OutOfDateId,
		mdMsg: `
# Generated packages are out of date!

The check found files that differ from what the catalogue produces.

## Things you can try:
- Regenerate and commit the result:
~~~
$ shimgen generate
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to write into the repository.

## Things you can try:
- Check file and directory permissions
- Run shimgen from a checkout you own`,
	}

	manifestWriteFailedIssue = &Issue{
		id: ManifestWriteFailedId,
		mdMsg: `
# The top-level package.json could not be written!

Every package was generated, but saving the updated override tables
failed. The previous manifest is left in place.

## Things you can try:
- Check free disk space on the repository's filesystem
- Re-run the command; unchanged packages are not rewritten:
~~~
$ shimgen generate
~~~`,
	}

	issues = map[Id]*Issue{
		manifestNotFoundIssue.Id():    manifestNotFoundIssue,
		manifestInvalidIssue.Id():     manifestInvalidIssue,
		catalogueNotFoundIssue.Id():   catalogueNotFoundIssue,
		catalogueInvalidIssue.Id():    catalogueInvalidIssue,
		generationFailedIssue.Id():    generationFailedIssue,
		installFailedIssue.Id():       installFailedIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		outOfDateIssue.Id():           outOfDateIssue,
		permissionDeniedIssue.Id():    permissionDeniedIssue,
		manifestWriteFailedIssue.Id(): manifestWriteFailedIssue,
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the Markdown message with glamour using stylePath
// ("dark", "light", "notty" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also:\n")
		for _, link := range slices.Concat(i.docLinks, i.extLinks) {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

// Values returns every catalogue entry ordered by Id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
