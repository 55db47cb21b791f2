package controller

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/middleware"
	"qa-assistant-be/internal/service"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Add(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
	auth            *middleware.Auth
}

func NewDocumentController(documentService service.IDocumentService, auth *middleware.Auth) IDocumentController {
	return &documentController{documentService: documentService, auth: auth}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	route(r, "/documents/add-document", c.auth.RequiresAuth, c.Add)
	route(r, "/documents/get-documents", c.auth.RequiresAuth, c.List)
	route(r, "/documents/delete-document", c.auth.RequiresAuth, c.Delete)
}

func (c *documentController) Add(ctx *fiber.Ctx) error {
	title := middleware.OptionalParam(ctx, "title", "")
	text := middleware.OptionalParam(ctx, "text", "")
	origin := "api"

	// a multipart file upload replaces the inline text parameter
	if file, err := ctx.FormFile("file"); err == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			return err
		}
		defer f.Close()
		content, err := io.ReadAll(f)
		if err != nil {
			return err
		}
		text = string(content)
		origin = "upload"
		if title == "" {
			title = file.Filename
		}
	}

	replace := strings.EqualFold(middleware.OptionalParam(ctx, "replace", "false"), "true")
	documentID, err := c.documentService.Upsert(ctx.Context(), middleware.User(ctx),
		middleware.OptionalParam(ctx, "documentid", ""), title, text, origin, replace)
	if err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{"documentId": documentID})
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	numberOfItems, offset, err := middleware.ListParams(ctx)
	if err != nil {
		return err
	}
	documents, total, err := c.documentService.List(ctx.Context(), middleware.User(ctx),
		middleware.SplitListParam(ctx, "documentids"),
		middleware.OptionalParam(ctx, "searchterm", ""),
		numberOfItems, offset)
	if err != nil {
		return err
	}

	items := make([]fiber.Map, 0, len(documents))
	for _, document := range documents {
		items = append(items, documentItem(document))
	}
	return middleware.JSON(ctx, fiber.Map{"items": items, "totalItems": total})
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	documentID, err := middleware.RequiredParam(ctx, "documentid")
	if err != nil {
		return err
	}
	if err := c.documentService.Delete(ctx.Context(), middleware.User(ctx), documentID); err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{"documentId": documentID})
}

func documentItem(document *entity.Document) fiber.Map {
	return fiber.Map{
		"id":            document.DocumentID,
		"title":         document.Title,
		"origin":        document.Origin,
		"type":          document.Type,
		"numberOfWords": len(strings.Fields(document.Text)),
		"created":       document.CreatedAt.Unix(),
		"modified":      document.UpdatedAt.Unix(),
	}
}
