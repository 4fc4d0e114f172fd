package main

import (
	"context"
	"flag"
	"os"
	"runtime"

	"GopherMap/internal/config"
	"GopherMap/internal/glbackend"
	"GopherMap/internal/logger"
	"GopherMap/internal/shader"
	"GopherMap/internal/watch"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

func init() {
	// GL calls must come from the thread that created the context
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "mapshader.toml", "path to the TOML configuration")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Init()
		logger.Log.Fatal("Invalid configuration", zap.Error(err))
	}
	if err := logger.InitLevel(cfg.Log.Level, cfg.Log.Development); err != nil {
		logger.Init()
		logger.Log.Warn("Falling back to info logging", zap.Error(err))
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Log.Error("mapshader failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(int(cfg.Window.Width), int(cfg.Window.Height), cfg.Window.Title, nil, nil)
	if err != nil {
		return err
	}
	window.MakeContextCurrent()
	if cfg.Window.VSync {
		glfw.SwapInterval(1)
	}

	if err := gl.Init(); err != nil {
		return err
	}
	logger.Log.Info("OpenGL initialized", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	manager := shader.NewManager(glbackend.New(), sourceLoader(cfg.Shaders.Dir))
	defer manager.Clear()

	if cfg.Shaders.Watch {
		w, err := watch.New(cfg.Shaders.Dir, manager.QueueReload)
		if err != nil {
			return err
		}
		defer w.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go w.Run(ctx)
	}

	program, err := manager.Acquire(shader.Icon)
	if err != nil {
		return err
	}
	defer manager.Release(shader.Icon)

	icon, err := shader.AsIcon(program)
	if err != nil {
		return err
	}

	scene := newIconScene()
	defer scene.Delete()

	icon.Texture.Set(0)
	icon.FadeTexture.Set(1)
	icon.TexSize.Set(mgl32.Vec2{spriteSize, spriteSize})
	icon.Skewed.Set(0)
	icon.Opacity.Set(1)

	gl.ClearColor(0.93, 0.91, 0.87, 1.0)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)

	frame := 0
	for !window.ShouldClose() {
		if err := manager.ProcessReloads(); err != nil {
			logger.Log.Warn("Shader reload failed", zap.Error(err))
		}

		width, height := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(width), int32(height))
		gl.Clear(gl.COLOR_BUFFER_BIT)

		zoom := float32(frame%600) / 100
		icon.Matrix.Set(tileMatrix(width, height))
		icon.ExtrudeScale.Set(mgl32.Vec2{2 / float32(width), 2 / float32(height)})
		icon.Zoom.Set(zoom)

		scene.Draw(icon)

		window.SwapBuffers()
		glfw.PollEvents()
		frame++
		if frame%600 == 0 {
			manager.LogStats()
		}
	}
	return nil
}

func sourceLoader(dir string) shader.SourceLoader {
	defaults := shader.DefaultSources()
	if dir == "" {
		return shader.StaticSources(defaults)
	}
	return func() (shader.Sources, error) {
		srcs, err := shader.LoadSources(os.DirFS(dir))
		if err != nil {
			return nil, err
		}
		return defaults.Merge(srcs), nil
	}
}

// tileMatrix maps one 8192-unit tile onto the framebuffer
func tileMatrix(width, height int) mgl32.Mat4 {
	const extent = 8192
	aspect := float32(width) / float32(height)
	proj := mgl32.Ortho2D(-aspect, aspect, -1, 1)
	return proj.Mul4(mgl32.Scale3D(2.0/extent, -2.0/extent, 1)).Mul4(mgl32.Translate3D(-extent/2, -extent/2, 0))
}
