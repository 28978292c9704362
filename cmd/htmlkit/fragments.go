package main

import (
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/pkg/render"
)

func escapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "escape [text...]",
		Short: "Escape text for HTML",
		Long: `Escape text for use in HTML content or attribute values.

Reads standard input when no text is given. Input that is not valid
UTF-8 is read as Latin-1.

Examples:
  htmlkit escape '<b>Tom & Jerry</b>'
  cat notes.txt | htmlkit escape`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			html, err := render.Escape(data)
			if err != nil {
				return err
			}
			writeLine(cmd, html)
			return nil
		},
	}
}

func attrsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attrs [mapping]",
		Short: "Serialize an attribute mapping",
		Long: `Serialize a YAML or JSON attribute mapping in source order.

Nested mappings flatten to dash-joined names, true renders a bare
name, false drops the attribute and ~ as a nested key reuses the
parent name.

Examples:
  htmlkit attrs '{class: btn, data: {id: 7, ~: true}, disabled: true}'
  htmlkit attrs '{"href": "/a?b=1&c=2"}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			attrs, err := parseMapping(data)
			if err != nil {
				return err
			}
			html, err := render.ToAttributes(attrs)
			if err != nil {
				return err
			}
			writeLine(cmd, html)
			return nil
		},
	}
}

// parseMapping decodes YAML or JSON input, keeping key order.
func parseMapping(data []byte) (*yaml.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.New("H010").Wrap(err)
	}
	return &root, nil
}

func elementCmd() *cobra.Command {
	var (
		attrs   string
		content string
		void    bool
		strict  bool
	)

	cmd := &cobra.Command{
		Use:   "element <tag>",
		Short: "Render a single element",
		Long: `Render <tag attrs>content</tag>, or <tag attrs> with --void.

Content is inserted as given. Escape it first if it is untrusted text.
With --strict the tag must be a known HTML element and void elements
are detected automatically.

Examples:
  htmlkit element a --attrs '{href: /docs}' --content Docs
  htmlkit element input --void --attrs '{type: checkbox, checked: true}'
  htmlkit element --strict br`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag := args[0]
			var a any
			if strings.TrimSpace(attrs) != "" {
				node, err := parseMapping([]byte(attrs))
				if err != nil {
					return err
				}
				a = node
			}

			var (
				html string
				err  error
			)
			switch {
			case strict:
				html, err = render.Tag(tag, a, content)
			case void:
				html, err = render.Void(tag, a)
			default:
				html, err = render.Element(tag, a, content)
			}
			if err != nil {
				return err
			}
			writeLine(cmd, html)
			return nil
		},
	}

	cmd.Flags().StringVarP(&attrs, "attrs", "a", "", "Attribute mapping (YAML or JSON)")
	cmd.Flags().StringVarP(&content, "content", "c", "", "Element content, inserted verbatim")
	cmd.Flags().BoolVar(&void, "void", false, "Render without content or closing tag")
	cmd.Flags().BoolVar(&strict, "strict", false, "Require a known element and pick void/normal from the tag table")

	return cmd
}

func sanitizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sanitize [text...]",
		Short: "Strip tags and entities from text",
		Long: `Remove <...> spans and &...; entity spans from text.

An unterminated span removes the rest of the input.

Examples:
  htmlkit sanitize '<b>bold</b> &amp; plain'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			writeLine(cmd, render.Sanitize(render.ToUTF8(data)))
			return nil
		},
	}
}

func tagsCmd() *cobra.Command {
	var voidOnly bool

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List the known HTML elements",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range render.Tags() {
				if voidOnly && !render.IsVoid(name) {
					continue
				}
				if render.IsVoid(name) && !voidOnly {
					writeLine(cmd, name+" (void)")
					continue
				}
				writeLine(cmd, name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&voidOnly, "void", false, "List only void elements")

	return cmd
}
