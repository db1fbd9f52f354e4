package main

import (
	"errors"
	"fmt"
	"io/ioutil"
	"strconv"

	"github.com/fatih/color"
	"github.com/nat-n/geom"
	"github.com/nat-n/piper"
	"github.com/nat-n/wingmesh"
	"gopkg.in/yaml.v3"
)

/* Commands:
 * cube
 * plane
 * build
 * load
 * save
 * validate
 * info
 * export-obj
 * center-and-scale
 */

type soupSchema struct {
	Name      string         `yaml:"name"`
	Tolerance float64        `yaml:"tolerance"`
	Faces     [][][3]float64 `yaml:"faces"`
}

func cube(data interface{}, flags map[string]piper.Flag, args []string) (result interface{}, err error) {
	if _, verbose := flags["verbose"]; verbose {
		fmt.Println("Creating cube")
	}
	size, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		err = errors.New("Could not parse cube size from: " + args[0])
		return
	}
	m, err := wingmesh.Cube(size)
	result = interface{}(m)
	return
}

func plane(data interface{}, flags map[string]piper.Flag, args []string) (result interface{}, err error) {
	if _, verbose := flags["verbose"]; verbose {
		fmt.Println("Creating plane")
	}
	width, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		err = errors.New("Could not parse plane width from: " + args[0])
		return
	}
	height, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		err = errors.New("Could not parse plane height from: " + args[1])
		return
	}
	m, err := wingmesh.Plane(width, height)
	result = interface{}(m)
	return
}

func build(data interface{}, flags map[string]piper.Flag, args []string) (result interface{}, err error) {
	if _, verbose := flags["verbose"]; verbose {
		fmt.Println("Building mesh from soup description " + args[0])
	}
	soup_bytes, err := ioutil.ReadFile(args[0])
	if err != nil {
		return
	}
	soup := new(soupSchema)
	if err = yaml.Unmarshal(soup_bytes, soup); err != nil {
		err = errors.New("Could not parse soup description: " + err.Error())
		return
	}
	polys := make([][]geom.Vec3, 0, len(soup.Faces))
	for _, face := range soup.Faces {
		poly := make([]geom.Vec3, 0, len(face))
		for _, p := range face {
			poly = append(poly, geom.Vec3{p[0], p[1], p[2]})
		}
		polys = append(polys, poly)
	}
	m, _, err := wingmesh.FromPolygons(polys, soup.Tolerance)
	result = interface{}(m)
	return
}

func load(data interface{}, flags map[string]piper.Flag, args []string) (result interface{}, err error) {
	if _, verbose := flags["verbose"]; verbose {
		fmt.Println("Loading mesh from " + args[0])
	}
	m, err := wingmesh.ReadFile(args[0])
	result = interface{}(m)
	return
}

func save(data interface{}, flags map[string]piper.Flag, args []string) (result interface{}, err error) {
	if _, verbose := flags["verbose"]; verbose {
		fmt.Println("Saving mesh to " + args[0])
	}
	m := data.(*wingmesh.Mesh)
	err = m.WriteFile(args[0])
	result = data
	return
}

func validate(data interface{}, flags map[string]piper.Flag, args []string) (result interface{}, err error) {
	m := data.(*wingmesh.Mesh)
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	if verr := m.Validate(); verr != nil {
		fmt.Println(red("structure: " + verr.Error()))
	} else {
		fmt.Println(green("structure: ok"))
	}
	if m.IsManifold() {
		fmt.Println(green("manifold:  yes"))
	} else {
		fmt.Println(red("manifold:  no"))
	}
	result = data
	return
}

func info(data interface{}, flags map[string]piper.Flag, args []string) (result interface{}, err error) {
	m := data.(*wingmesh.Mesh)
	fmt.Println("vertices:", m.VertexCount())
	fmt.Println("edges:   ", m.EdgeCount())
	fmt.Println("faces:   ", m.FaceCount())
	fmt.Println("shells:  ", m.Shells())
	fmt.Println("genus:   ", m.Genus())
	fmt.Println("rings:   ", m.Rings())
	if m.EulerBalanced() {
		fmt.Println("euler:    balanced")
	} else {
		fmt.Println("euler:    NOT balanced")
	}
	result = data
	return
}

func export_obj(data interface{}, flags map[string]piper.Flag, args []string) (result interface{}, err error) {
	if _, verbose := flags["verbose"]; verbose {
		fmt.Println("Exporting obj to " + args[0])
	}
	m := data.(*wingmesh.Mesh)
	gm, err := m.ToTriangleMesh("wingmesh")
	if err != nil {
		return
	}
	gm.WriteOBJFile(args[0])
	result = data
	return
}

func center_and_scale(data interface{}, flags map[string]piper.Flag, args []string) (result interface{}, err error) {
	if _, verbose := flags["verbose"]; verbose {
		fmt.Println("Centering and Scaling")
	}
	bb_max_dimension, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return
	}
	m := data.(*wingmesh.Mesh)
	err = m.ScaleAndCenter(bb_max_dimension)
	result = data
	return
}

func main() {
	cli := piper.CLIApp{
		Name:        "wingmesh",
		Description: "creates and inspects winged-edge meshes",
	}

	cli.RegisterFlag(piper.Flag{
		Name:        "verbose",
		Symbol:      "v",
		Description: "Verbose mode",
	})

	cli.RegisterCommand(piper.Command{
		Name:        "cube",
		Description: "create a cube of the given edge length",
		Args:        []string{"size"},
		Task:        cube,
	})

	cli.RegisterCommand(piper.Command{
		Name:        "plane",
		Description: "create a single rectangular face",
		Args:        []string{"width", "height"},
		Task:        plane,
	})

	cli.RegisterCommand(piper.Command{
		Name: "build",
		Description: ("build a mesh from a yaml polygon soup description " +
			"via Euler operators"),
		Args: []string{"soup file"},
		Task: build,
	})

	cli.RegisterCommand(piper.Command{
		Name:        "load",
		Description: "load mesh from file",
		Args:        []string{"mesh file"},
		Task:        load,
	})

	cli.RegisterCommand(piper.Command{
		Name:        "save",
		Description: "save mesh to file",
		Args:        []string{"mesh file"},
		Task:        save,
	})

	cli.RegisterCommand(piper.Command{
		Name:        "validate",
		Description: "run the structural validation and the manifold check",
		Task:        validate,
	})

	cli.RegisterCommand(piper.Command{
		Name:        "info",
		Description: "print entity counts and Euler bookkeeping",
		Task:        info,
	})

	cli.RegisterCommand(piper.Command{
		Name:        "export-obj",
		Description: "export a fan-triangulated obj file",
		Args:        []string{"obj file"},
		Task:        export_obj,
	})

	cli.RegisterCommand(piper.Command{
		Name: "center-and-scale",
		Description: ("transforms the mesh so that its bounding box is " +
			"centered on the origin, and the extent of its largest dimension " +
			"is equal to the provided value"),
		Args: []string{"max bounding box dimension"},
		Task: center_and_scale,
	})

	err := cli.Run()

	if err != nil {
		fmt.Println(err)
		cli.PrintHelp()
	}
}
