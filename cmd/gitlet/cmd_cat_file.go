package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitletcore/gitlet/pkg/objects"
	"github.com/gitletcore/gitlet/pkg/objects/blob"
	"github.com/gitletcore/gitlet/pkg/objects/tree"
	"github.com/gitletcore/gitlet/pkg/store"
)

func newCatFileCmd() *cobra.Command {
	var showType bool
	var showSize bool
	var pretty bool

	cmd := &cobra.Command{
		Use:   "cat-file <hash>",
		Short: "Print the contents or metadata of a stored object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			uid, err := objects.ParseObjectHash(args[0])
			if err != nil {
				return fmt.Errorf("invalid object hash: %w", err)
			}

			raw, err := repo.ObjectStore().Read(uid)
			if err != nil {
				return fmt.Errorf("read object: %w", err)
			}

			objType, err := objects.SerializedObject(raw).Type()
			if err != nil {
				return fmt.Errorf("parse object header: %w", err)
			}

			if showType {
				fmt.Println(objType)
				return nil
			}

			if showSize {
				content, err := objects.SerializedObject(raw).Content()
				if err != nil {
					return fmt.Errorf("parse object content: %w", err)
				}
				fmt.Println(content.Size())
				return nil
			}

			return printObjectContent(repo.ObjectStore(), objType, uid, raw, pretty)
		},
	}

	cmd.Flags().BoolVarP(&showType, "type", "t", false, "Print the object's type")
	cmd.Flags().BoolVarP(&showSize, "size", "s", false, "Print the object's content size")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", true, "Pretty-print the object's content")

	return cmd
}

func printObjectContent(objStore store.ObjectStore, objType objects.ObjectType, uid objects.ObjectHash, raw []byte, pretty bool) error {
	switch objType {
	case objects.BlobType:
		b, err := blob.Read(objStore, uid)
		if err != nil {
			return fmt.Errorf("parse blob: %w", err)
		}
		content, err := b.Content()
		if err != nil {
			return fmt.Errorf("read blob content: %w", err)
		}
		os.Stdout.Write(content.Bytes())
		return nil

	case objects.TreeType:
		t, err := tree.ParseTree(raw)
		if err != nil {
			return fmt.Errorf("parse tree: %w", err)
		}
		for _, entry := range t.Entries() {
			if pretty {
				fmt.Printf("%s %s %s\t%s\n", entry.Mode().ToOctalString(), entry.Mode(), entry.UID(), entry.Name())
			} else {
				fmt.Printf("%s %s\t%s\n", entry.Mode().ToOctalString(), entry.UID(), entry.Name())
			}
		}
		return nil

	default:
		return fmt.Errorf("unsupported object type: %s", objType)
	}
}
